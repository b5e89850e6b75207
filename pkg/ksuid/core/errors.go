package core

import (
	"errors"
	"fmt"
)

// 错误分为两大类：
//   - ErrValidation: 字段级约束违规（类型、范围、长度、格式）
//   - ErrBase62: base62编解码错误（非法字符）
//
// 所有具体错误都通过 %w 挂接到对应的根错误上，
// 调用方可以用 errors.Is(err, ErrValidation) 做大类判断。
var (
	// ErrValidation 校验失败的根错误
	ErrValidation = errors.New("validation failed")

	// ErrBase62 base62编解码失败的根错误
	ErrBase62 = errors.New("base62 codec failed")
)

var (
	// ErrInvalidPrefix 前缀（environment/resource）包含非法字符
	// 合法格式：^[a-z0-9]+$（小写字母和数字，至少1个字符）
	ErrInvalidPrefix = fmt.Errorf("%w: prefix contains invalid characters", ErrValidation)

	// ErrValueOutOfRange 无符号整数超出字段位宽允许的范围
	ErrValueOutOfRange = fmt.Errorf("%w: value out of range", ErrValidation)

	// ErrInvalidByteLength 字节序列长度不符合要求
	ErrInvalidByteLength = fmt.Errorf("%w: invalid byte length", ErrValidation)

	// ErrEmptyInput 输入为空字符串
	ErrEmptyInput = fmt.Errorf("%w: input must not be empty", ErrValidation)

	// ErrInvalidID ID格式不匹配（统一的格式错误，不泄露内部格式细节）
	ErrInvalidID = fmt.Errorf("%w: id is invalid", ErrValidation)

	// ErrProdImplied 文本形式中显式出现了prod环境前缀
	// 说明：序列化时prod环境会被省略，因此合法ID中绝不会出现prod_前缀，
	// 出现即表示该ID不是本库生成的规范形式
	ErrProdImplied = fmt.Errorf("%w: production environment is implied", ErrValidation)

	// ErrTimestampOverflow 时间戳超出48位能表示的最大值
	ErrTimestampOverflow = fmt.Errorf("%w: timestamp greater than 8921556-12-07T10:44:16Z", ErrValidation)

	// ErrSequenceOverflow 同一秒内序列号耗尽（仅在StrategyError策略下返回）
	ErrSequenceOverflow = fmt.Errorf("%w: sequence exhausted within one second", ErrValidation)

	// ErrNilConfig 配置为nil
	ErrNilConfig = fmt.Errorf("%w: config cannot be nil", ErrValidation)

	// ErrNilInstance 实例标识为nil
	ErrNilInstance = fmt.Errorf("%w: instance cannot be nil", ErrValidation)

	// ErrInvalidBase62Char base62字符串中包含字母表之外的字符
	ErrInvalidBase62Char = fmt.Errorf("%w: invalid character in base62 string", ErrBase62)
)

var (
	// ErrGeneratorNotFound 生成器未找到
	ErrGeneratorNotFound = errors.New("generator not found")

	// ErrGeneratorAlreadyExists 生成器已存在
	ErrGeneratorAlreadyExists = errors.New("generator already exists")

	// ErrInvalidGeneratorType 无效的生成器类型
	ErrInvalidGeneratorType = errors.New("invalid generator type")

	// ErrInvalidKey 无效的注册键
	ErrInvalidKey = errors.New("invalid key")

	// ErrFactoryNotFound 工厂未找到
	ErrFactoryNotFound = errors.New("factory not found")

	// ErrParserNotFound 解析器未找到
	ErrParserNotFound = errors.New("parser not found")

	// ErrValidatorNotFound 验证器未找到
	ErrValidatorNotFound = errors.New("validator not found")

	// ErrMaxGeneratorsReached 达到最大生成器数量
	ErrMaxGeneratorsReached = errors.New("maximum number of generators reached")
)
