package models

import "encoding/json"

// Array-valued fields round-trip through the store either as native JSON
// arrays or as JSON-encoded text (legacy rows). Decoders accept both and
// default to an empty list on parse failure; encoders never emit null.

type StringList []string

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		var inner []string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*l = inner
			return nil
		}
	}
	*l = StringList{}
	return nil
}

type WorkOrderItems []WorkOrderItem

func (l WorkOrderItems) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]WorkOrderItem(l))
}

func (l *WorkOrderItems) UnmarshalJSON(data []byte) error {
	var arr []WorkOrderItem
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		var inner []WorkOrderItem
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*l = inner
			return nil
		}
	}
	*l = WorkOrderItems{}
	return nil
}

type TallyItems []TallyItem

func (l TallyItems) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TallyItem(l))
}

func (l *TallyItems) UnmarshalJSON(data []byte) error {
	var arr []TallyItem
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		var inner []TallyItem
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*l = inner
			return nil
		}
	}
	*l = TallyItems{}
	return nil
}
