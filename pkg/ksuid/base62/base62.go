// Package base62 提供字节序列与base62数字串之间的无损转换。
//
// 字母表固定为 0-9A-Za-z（数字0对应'0'，数字61对应'z'），
// 字节序列按大端序解释为一个非负大整数后做进制转换。
// 21字节的KSUID载荷超出了uint64的表示范围，因此内部使用math/big
// 做任意精度运算，保证任意长度输入的位级精确往返。
package base62

import (
	"fmt"
	"math/big"

	"katydid-common-ksuid/pkg/ksuid/core"
)

// Alphabet base62字母表
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// alphabetLength 进制基数
const alphabetLength = 62

// decodeLookup 字符到数值的反向查找表
// 说明：非法字符对应-1，解码时借此快速识别并拒绝
var decodeLookup = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = int8(i)
	}
	return table
}()

var bigBase = big.NewInt(alphabetLength)

// Encode 将字节序列编码为base62字符串
//
// 规则：
//   - 空输入返回空字符串
//   - 全零字节输入返回"0"
//   - 其余情况返回无前导零数字的最短表示
//
// 注意：本函数不做定宽补齐，补齐到固定宽度是调用方的职责
func Encode(input []byte) string {
	if len(input) == 0 {
		return ""
	}

	num := new(big.Int).SetBytes(input)
	if num.Sign() == 0 {
		return "0"
	}

	// 每字节约产生1.38个base62数字，按1.5倍预估容量避免扩容
	result := make([]byte, 0, len(input)*3/2+1)
	rem := new(big.Int)
	for num.Sign() > 0 {
		num.QuoRem(num, bigBase, rem)
		result = append(result, Alphabet[rem.Int64()])
	}

	// 逆序（上面按低位在前生成）
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

// Decode 将base62字符串解码为字节序列
//
// 规则：
//   - 空字符串返回空切片
//   - 全零数字串（如"0"、"000"）返回单个零字节
//   - 其余情况返回表示该数值的最短字节序列（无前导零字节）
//
// 任何字母表之外的字符都会返回错误，绝不静默忽略或截断。
// 需要定宽的调用方（如21字节的KSUID载荷）必须自行左补零。
func Decode(input string) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}

	num := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(input); i++ {
		value := decodeLookup[input[i]]
		if value < 0 {
			return nil, fmt.Errorf("%w: %q at position %d",
				core.ErrInvalidBase62Char, input[i], i)
		}
		digit.SetInt64(int64(value))
		num.Mul(num, bigBase)
		num.Add(num, digit)
	}

	if num.Sign() == 0 {
		return []byte{0}, nil
	}
	return num.Bytes(), nil
}

// DecodeWithLength 解码并左补零到指定字节长度
//
// 说明：Decode返回的是最短表示，数值的高位零字节会丢失；
// 定宽载荷（如KSUID的21字节）在字段提取前必须恢复这些零字节。
// 解码结果超过expectedLength时原样返回（由调用方判定超界语义）。
func DecodeWithLength(input string, expectedLength int) ([]byte, error) {
	decoded, err := Decode(input)
	if err != nil {
		return nil, err
	}
	if len(decoded) >= expectedLength {
		return decoded, nil
	}

	padded := make([]byte, expectedLength)
	copy(padded[expectedLength-len(decoded):], decoded)
	return padded, nil
}
