package dumpy

// Option names accepted by Configure and GetConfigOption.
const (
	OptStrMaxLength      = "str_max_length"
	OptBoolLowercase     = "bool_lowercase"
	OptNullLowercase     = "null_lowercase"
	OptRoundDouble       = "round_double"
	OptReplaceNewline    = "replace_newline"
	OptArrayMaxElements  = "array_max_elements"
	OptArrayIndenting    = "array_indenting"
	OptObjectLimitedInfo = "object_limited_info"
)

// 环境变量名称
const (
	EnvStrMaxLength      = "DUMPY_STR_MAX_LENGTH"
	EnvBoolLowercase     = "DUMPY_BOOL_LOWERCASE"
	EnvNullLowercase     = "DUMPY_NULL_LOWERCASE"
	EnvRoundDouble       = "DUMPY_ROUND_DOUBLE"
	EnvReplaceNewline    = "DUMPY_REPLACE_NEWLINE"
	EnvArrayMaxElements  = "DUMPY_ARRAY_MAX_ELEMENTS"
	EnvArrayIndenting    = "DUMPY_ARRAY_INDENTING"
	EnvObjectLimitedInfo = "DUMPY_OBJECT_LIMITED_INFO"
)

// 默认配置值
const (
	DefaultStrMaxLength     = 50
	DefaultArrayMaxElements = 20
	DefaultArrayIndenting   = "    "
)

const (
	// Ellipsis replaces content cut off by str_max_length or array_max_elements.
	Ellipsis = "..."

	// propertyIndent prefixes every line of the Properties section.
	propertyIndent = "    "

	keySeparator = " => "

	labelParents    = "Parents:"
	labelInterfaces = "Interfaces:"
	labelTraits     = "Traits:"
	labelProperties = "Properties:"

	// tagName is the struct tag read by the reflection adapter.
	tagName = "dumpy"
)
