package models

import "github.com/shopspring/decimal"

type Project struct {
	ID     string          `json:"id"`
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
}
