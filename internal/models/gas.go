package models

import "time"

// GasLevel is the oracle's 5-level classification of current gas price.
type GasLevel string

const (
	GasLevelLow      GasLevel = "low"
	GasLevelNormal   GasLevel = "normal"
	GasLevelElevated GasLevel = "elevated"
	GasLevelHigh     GasLevel = "high"
	GasLevelSpike    GasLevel = "spike"
)

// GasOracleResponse is the wire shape returned by the gas oracle service.
type GasOracleResponse struct {
	ChainID        int64    `json:"chainId"`
	GasPriceGwei   float64  `json:"gasPriceGwei"`
	Level          GasLevel `json:"level"`
	Recommendation string   `json:"recommendation"`
	VsMedian       float64  `json:"vsMedian"`
	Source         string   `json:"source"`
	Timestamp      int64    `json:"timestamp"`
}

// GasPriceData is the derived snapshot handed to callers. Recomputed on each
// fetch, never persisted.
type GasPriceData struct {
	ChainID        int64     `json:"chainId"`
	ChainName      string    `json:"chainName"`
	GasPriceGwei   float64   `json:"gasPriceGwei"`
	Level          GasLevel  `json:"level"`
	IsSpike        bool      `json:"isSpike"`
	Recommendation string    `json:"recommendation"`
	VsMedian       float64   `json:"vsMedian"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}
