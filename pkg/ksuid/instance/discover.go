package instance

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/logger"
)

// cpusetPath Docker容器检测读取的文件路径
// 容器内该文件内容形如 /docker/<64位十六进制容器ID>
const cpusetPath = "/proc/1/cpuset"

// containerIDHexLen 容器ID的十六进制字符长度
const containerIDHexLen = 64

// Discover 按优先级探测当前进程的实例标识
//
// 探测顺序：
//  1. Docker容器ID（容器环境下跨实例最稳定）
//  2. 网卡MAC地址 + 进程PID
//  3. 加密随机8字节（兜底，永远可用）
//
// 返回:
//
//	Instance: 探测到的实例标识
//	error: 仅当随机源不可用时返回（此时进程不应继续生成ID）
func Discover() (Instance, error) {
	if inst, ok := discoverDocker(); ok {
		logger.Debug("实例标识探测完成", "scheme", inst.Scheme().String())
		return inst, nil
	}
	if inst, ok := discoverMACAndPID(); ok {
		logger.Debug("实例标识探测完成", "scheme", inst.Scheme().String())
		return inst, nil
	}
	inst, err := NewRandom()
	if err != nil {
		return Instance{}, err
	}
	logger.Debug("实例标识探测完成", "scheme", inst.Scheme().String())
	return inst, nil
}

// NewRandom 创建随机方案的实例标识
// 随机源为crypto/rand，读取失败视为致命错误并快速失败
func NewRandom() (Instance, error) {
	buf := make([]byte, IdentifierLen)
	if _, err := rand.Read(buf); err != nil {
		return Instance{}, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return New(core.SchemeRandom, buf)
}

// discoverDocker 尝试从/proc/1/cpuset读取Docker容器标识
func discoverDocker() (Instance, bool) {
	src, err := os.ReadFile(cpusetPath)
	if err != nil {
		return Instance{}, false
	}
	return dockerInstanceFromCpuset(strings.TrimSpace(string(src)))
}

// dockerInstanceFromCpuset 从cpuset内容解析容器实例标识
// 说明：独立出来便于在无容器环境下做单元测试
func dockerInstanceFromCpuset(src string) (Instance, bool) {
	if !strings.HasPrefix(src, "/docker") {
		return Instance{}, false
	}

	containerID := filepath.Base(src)
	if len(containerID) != containerIDHexLen {
		return Instance{}, false
	}

	containerBytes, err := hex.DecodeString(containerID)
	if err != nil {
		return Instance{}, false
	}

	// 取容器ID的前8字节作为标识
	inst, err := New(core.SchemeDockerCont, containerBytes[:IdentifierLen])
	if err != nil {
		return Instance{}, false
	}
	return inst, true
}

// discoverMACAndPID 尝试用首个非回环网卡的MAC地址加进程PID构造实例标识
func discoverMACAndPID() (Instance, bool) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return Instance{}, false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if isUsableHardwareAddr(iface.HardwareAddr) {
			return macPIDInstance(iface.HardwareAddr, os.Getpid())
		}
	}
	return Instance{}, false
}

// isUsableHardwareAddr MAC地址可用性判定（6字节且非全零）
func isUsableHardwareAddr(hw net.HardwareAddr) bool {
	if len(hw) < 6 {
		return false
	}
	for _, b := range hw[:6] {
		if b != 0 {
			return true
		}
	}
	return false
}

// macPIDInstance 由MAC地址和PID组装实例标识
// 布局：前6字节为MAC地址，后2字节为PID mod 65536（大端序）
func macPIDInstance(hw net.HardwareAddr, pid int) (Instance, bool) {
	buf := make([]byte, IdentifierLen)
	copy(buf[:6], hw[:6])
	binary.BigEndian.PutUint16(buf[6:], uint16(pid%65536))

	inst, err := New(core.SchemeMACAndPID, buf)
	if err != nil {
		return Instance{}, false
	}
	return inst, true
}
