package registry

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"katydid-common-ksuid/pkg/ksuid"
	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
)

// testConfig 构造使用固定实例的测试配置
func testConfig(t *testing.T) *ksuid.Config {
	t.Helper()
	identifier := make([]byte, instance.IdentifierLen)
	inst, err := instance.New(core.SchemeRandom, identifier)
	if err != nil {
		t.Fatal(err)
	}
	return &ksuid.Config{Environment: "dev", Instance: &inst}
}

// cleanRegistry 清空全局注册表并在测试结束后再次清空
func cleanRegistry(t *testing.T) *Registry {
	t.Helper()
	r := GetRegistry()
	r.Clear()
	t.Cleanup(r.Clear)
	return r
}

// TestValidateKey 测试键校验规则
func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"合法_普通键", "user-service", false},
		{"合法_带点和下划线", "svc.user_v2", false},
		{"合法_单字符", "a", false},
		{"非法_空键", "", true},
		{"非法_含空格", "user service", true},
		{"非法_含斜杠", "user/service", true},
		{"非法_超长", strings.Repeat("a", maxKeyLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrInvalidKey) {
				t.Errorf("错误应挂接到ErrInvalidKey: %v", err)
			}
		})
	}
}

// TestRegistryCreate 测试创建与重复检测
func TestRegistryCreate(t *testing.T) {
	r := cleanRegistry(t)

	gen, err := r.Create("svc-a", core.GeneratorTypeKsuid, testConfig(t))
	if err != nil {
		t.Fatalf("Create() 错误: %v", err)
	}
	id, err := gen.NextID("user")
	if err != nil || id == "" {
		t.Errorf("生成器不可用: (%q, %v)", id, err)
	}

	// 重复创建
	if _, err = r.Create("svc-a", core.GeneratorTypeKsuid, testConfig(t)); !errors.Is(err, core.ErrGeneratorAlreadyExists) {
		t.Errorf("重复key应报错: %v", err)
	}

	// 非法类型
	if _, err = r.Create("svc-b", core.GeneratorType("bogus"), testConfig(t)); !errors.Is(err, core.ErrInvalidGeneratorType) {
		t.Errorf("非法类型应报错: %v", err)
	}

	// 非法key
	if _, err = r.Create("bad key", core.GeneratorTypeKsuid, testConfig(t)); !errors.Is(err, core.ErrInvalidKey) {
		t.Errorf("非法key应报错: %v", err)
	}
}

// TestRegistryGetAndRemove 测试获取与移除
func TestRegistryGetAndRemove(t *testing.T) {
	r := cleanRegistry(t)

	created, err := r.Create("svc-a", core.GeneratorTypeKsuid, testConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Get("svc-a")
	if err != nil {
		t.Fatalf("Get() 错误: %v", err)
	}
	if got != created {
		t.Error("Get应返回同一实例")
	}

	if _, err = r.Get("missing"); !errors.Is(err, core.ErrGeneratorNotFound) {
		t.Errorf("缺失key应报错: %v", err)
	}

	if !r.Has("svc-a") || r.Has("missing") {
		t.Error("Has判断不符")
	}

	if err = r.Remove("svc-a"); err != nil {
		t.Fatalf("Remove() 错误: %v", err)
	}
	if r.Has("svc-a") {
		t.Error("移除后不应存在")
	}
	if err = r.Remove("svc-a"); !errors.Is(err, core.ErrGeneratorNotFound) {
		t.Errorf("重复移除应报错: %v", err)
	}
}

// TestRegistryGetOrCreate 测试幂等创建
func TestRegistryGetOrCreate(t *testing.T) {
	r := cleanRegistry(t)

	first, err := r.GetOrCreate("svc-a", core.GeneratorTypeKsuid, testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.GetOrCreate("svc-a", core.GeneratorTypeKsuid, testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("GetOrCreate应返回同一实例")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

// TestRegistryMaxGenerators 测试容量限制
func TestRegistryMaxGenerators(t *testing.T) {
	r := cleanRegistry(t)
	originalMax := r.GetMaxGenerators()
	t.Cleanup(func() { _ = r.SetMaxGenerators(originalMax) })

	if err := r.SetMaxGenerators(2); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Create("a", core.GeneratorTypeKsuid, testConfig(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create("b", core.GeneratorTypeKsuid, testConfig(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create("c", core.GeneratorTypeKsuid, testConfig(t)); !errors.Is(err, core.ErrMaxGeneratorsReached) {
		t.Errorf("超出容量应报错: %v", err)
	}

	// 新上限低于当前数量
	if err := r.SetMaxGenerators(1); err == nil {
		t.Error("新上限低于当前数量应报错")
	}
	// 非法上限
	if err := r.SetMaxGenerators(0); err == nil {
		t.Error("0上限应报错")
	}
	if err := r.SetMaxGenerators(absoluteMaxGenerators + 1); err == nil {
		t.Error("超出绝对上限应报错")
	}
}

// TestRegistryListKeys 测试键列表
func TestRegistryListKeys(t *testing.T) {
	r := cleanRegistry(t)

	for _, key := range []string{"a", "b", "c"} {
		if _, err := r.Create(key, core.GeneratorTypeKsuid, testConfig(t)); err != nil {
			t.Fatal(err)
		}
	}

	keys := r.ListKeys()
	if len(keys) != 3 {
		t.Errorf("ListKeys长度 = %d, want 3", len(keys))
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("缺少键%q", want)
		}
	}
}

// TestRegistryConcurrentAccess 测试并发读写安全
func TestRegistryConcurrentAccess(t *testing.T) {
	r := cleanRegistry(t)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				gen, err := r.GetOrCreate("shared", core.GeneratorTypeKsuid, testConfig(t))
				if err != nil {
					t.Errorf("GetOrCreate错误: %v", err)
					return
				}
				if _, err = gen.NextID("user"); err != nil {
					t.Errorf("NextID错误: %v", err)
					return
				}
				_ = r.Has("shared")
				_ = r.Count()
			}
		}()
	}
	wg.Wait()

	if r.Count() != 1 {
		t.Errorf("并发GetOrCreate后Count = %d, want 1", r.Count())
	}
}

// TestComponentRegistries 测试init注册的组件
func TestComponentRegistries(t *testing.T) {
	if !GetFactoryRegistry().Has(core.GeneratorTypeKsuid) {
		t.Error("ksuid工厂应已注册")
	}
	if !GetParserRegistry().Has(core.GeneratorTypeKsuid) {
		t.Error("ksuid解析器应已注册")
	}
	if !GetValidatorRegistry().Has(core.GeneratorTypeKsuid) {
		t.Error("ksuid验证器应已注册")
	}

	// 通过注册表取出的组件应能协同工作
	r := cleanRegistry(t)
	gen, err := r.Create("combo", core.GeneratorTypeKsuid, testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	id, err := gen.NextID("order")
	if err != nil {
		t.Fatal(err)
	}

	parser, err := GetParserRegistry().Get(core.GeneratorTypeKsuid)
	if err != nil {
		t.Fatal(err)
	}
	info, err := parser.Parse(id)
	if err != nil {
		t.Fatalf("解析生成的ID失败: %v", err)
	}
	if info.Resource != "order" || info.Environment != "dev" {
		t.Errorf("解析结果不符: %+v", info)
	}

	validator, err := GetValidatorRegistry().Get(core.GeneratorTypeKsuid)
	if err != nil {
		t.Fatal(err)
	}
	if err = validator.Validate(id); err != nil {
		t.Errorf("生成的ID应通过校验: %v", err)
	}

	// 未注册类型
	if _, err = GetFactoryRegistry().Get(core.GeneratorTypeCustom); !errors.Is(err, core.ErrFactoryNotFound) {
		t.Errorf("未注册工厂应报错: %v", err)
	}
	if _, err = GetParserRegistry().Get(core.GeneratorTypeCustom); !errors.Is(err, core.ErrParserNotFound) {
		t.Errorf("未注册解析器应报错: %v", err)
	}
	if _, err = GetValidatorRegistry().Get(core.GeneratorTypeCustom); !errors.Is(err, core.ErrValidatorNotFound) {
		t.Errorf("未注册验证器应报错: %v", err)
	}
}

// TestDefaultNode 测试默认生成器的包级API
func TestDefaultNode(t *testing.T) {
	ResetDefaultNode()
	t.Cleanup(ResetDefaultNode)

	node, err := GetDefaultNode()
	if err != nil {
		t.Fatalf("GetDefaultNode() 错误: %v", err)
	}
	again, err := GetDefaultNode()
	if err != nil {
		t.Fatal(err)
	}
	if node != again {
		t.Error("默认生成器应为单例")
	}

	if err = SetEnvironment("dev"); err != nil {
		t.Fatal(err)
	}

	k, err := Generate("user")
	if err != nil {
		t.Fatalf("Generate() 错误: %v", err)
	}
	if k.Environment() != "dev" || k.Resource() != "user" {
		t.Errorf("生成结果不符: %s", k)
	}

	id, err := NextID("user")
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(id)
	if err != nil {
		t.Fatalf("Parse() 错误: %v", err)
	}
	if parsed.Resource() != "user" {
		t.Errorf("Resource = %q", parsed.Resource())
	}

	// 切换实例
	identifier := make([]byte, instance.IdentifierLen)
	identifier[7] = 0x01
	inst, err := instance.New(core.SchemeRandom, identifier)
	if err != nil {
		t.Fatal(err)
	}
	if err = SetInstance(&inst); err != nil {
		t.Fatal(err)
	}
	k2, err := Generate("user")
	if err != nil {
		t.Fatal(err)
	}
	if !k2.Instance().Equals(inst) {
		t.Error("SetInstance未生效")
	}
}

// TestGetOrCreateDefaultGenerator 测试注册表路径的默认生成器
func TestGetOrCreateDefaultGenerator(t *testing.T) {
	r := cleanRegistry(t)

	gen, err := GetOrCreateDefaultGenerator()
	if err != nil {
		t.Fatalf("GetOrCreateDefaultGenerator() 错误: %v", err)
	}
	if !r.Has(DefaultGeneratorKey) {
		t.Error("默认生成器应已登记")
	}

	again, err := GetOrCreateDefaultGenerator()
	if err != nil {
		t.Fatal(err)
	}
	if gen != again {
		t.Error("重复调用应返回同一实例")
	}
}
