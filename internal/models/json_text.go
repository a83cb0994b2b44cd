package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONText 以文本形式存储的任意 JSON 值（如收货地址）
type JSONText []byte

// NewJSONText 从任意值构建 JSONText
func NewJSONText(value interface{}) (JSONText, error) {
	if value == nil {
		return nil, nil
	}
	if raw, ok := value.(json.RawMessage); ok {
		if len(raw) == 0 || string(raw) == "null" {
			return nil, nil
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid json value")
		}
		return append(JSONText(nil), raw...), nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return JSONText(b), nil
}

// IsNull 是否为空值
func (j JSONText) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// MarshalJSON 原样输出，非法内容按字符串输出
func (j JSONText) MarshalJSON() ([]byte, error) {
	if j.IsNull() {
		return []byte("null"), nil
	}
	if !json.Valid(j) {
		return json.Marshal(string(j))
	}
	return []byte(j), nil
}

// UnmarshalJSON 保存原始 JSON
func (j *JSONText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], b...)
	return nil
}

// Value 用于数据库写入
func (j JSONText) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

// Scan 用于数据库读取
func (j *JSONText) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(JSONText(nil), v...)
	case string:
		*j = JSONText(v)
	default:
		return fmt.Errorf("unsupported json text type: %T", value)
	}
	return nil
}
