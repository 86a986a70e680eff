package item

// FieldKey - каноничный идентификатор редактируемого поля записи
type FieldKey string

const (
	FieldTitle         FieldKey = "title"
	FieldMemo          FieldKey = "memo"
	FieldEmail         FieldKey = "email"
	FieldUsername      FieldKey = "username"
	FieldPassword      FieldKey = "password"
	FieldLongNumber    FieldKey = "longNumber"
	FieldStartFrom     FieldKey = "startFrom"
	FieldExpireBy      FieldKey = "expireBy"
	FieldSecurityCode  FieldKey = "securityCode"
	FieldSortCode      FieldKey = "sortCode"
	FieldAccountNumber FieldKey = "accountNumber"
)

func (k FieldKey) String() string {
	return string(k)
}

// Label возвращает подпись поля.
func (k FieldKey) Label() string {
	switch k {
	case FieldTitle:
		return "Title"
	case FieldMemo:
		return "Memo"
	case FieldEmail:
		return "Email"
	case FieldUsername:
		return "Username"
	case FieldPassword:
		return "Password"
	case FieldLongNumber:
		return "Card Long Number"
	case FieldStartFrom:
		return "Start from"
	case FieldExpireBy:
		return "Expire by"
	case FieldSecurityCode:
		return "Security Code"
	case FieldSortCode:
		return "Sort Code"
	case FieldAccountNumber:
		return "Account Number"
	default:
		return ""
	}
}

// InputKind - вид поля ввода
type InputKind string

const (
	KindPlain      InputKind = "plain"
	KindMultiline  InputKind = "multiline"
	KindLongNumber InputKind = "longNumber"
	KindDate       InputKind = "date"
)

// Field описывает одно поле схемы типа записи.
type Field struct {
	Key      FieldKey  `json:"key"`
	Kind     InputKind `json:"kind"`
	Required bool      `json:"required"`
	Label    string    `json:"label"`
}
