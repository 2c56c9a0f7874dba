package models

// Currency — запись справочника валют. Value хранит курс к рублю
// за Nominal единиц валюты.
type Currency struct {
	ID       int64   `json:"id"`
	NumCode  string  `json:"num_code"`
	CharCode string  `json:"char_code"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Nominal  int64   `json:"nominal"`
}
