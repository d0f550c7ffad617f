package chart

import (
	"errors"
	"strings"
)

// ContainerID is the DOM element the embedded chart mounts into.
const ContainerID = "tradingview-widget-container"

var ErrNoSymbol = errors.New("CHART_SYMBOL_EMPTY")

// Widget carries the TradingView advanced-chart parameters for one symbol. The UI
// discards the previous widget and mounts a new one whenever the selection changes.
type Widget struct {
	Symbol            string `json:"symbol"`
	Interval          string `json:"interval"`
	Timezone          string `json:"timezone"`
	Theme             string `json:"theme"`
	Style             string `json:"style"`
	Locale            string `json:"locale"`
	EnablePublishing  bool   `json:"enable_publishing"`
	AllowSymbolChange bool   `json:"allow_symbol_change"`
	Width             string `json:"width"`
	Height            int    `json:"height"`
	ContainerID       string `json:"container_id"`
}

func NewWidget(ticker string) (*Widget, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, ErrNoSymbol
	}
	return &Widget{
		Symbol:      symbol,
		Interval:    "D",
		Timezone:    "Etc/UTC",
		Theme:       "dark",
		Style:       "1",
		Locale:      "en",
		Width:       "100%",
		Height:      510,
		ContainerID: ContainerID,
	}, nil
}
