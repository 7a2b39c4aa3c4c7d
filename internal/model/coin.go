package model

// CoinType 支持的币种 (7 种)
type CoinType string

const (
	CoinBitcoin  CoinType = "bitcoin"
	CoinEthereum CoinType = "ethereum"
	CoinRipple   CoinType = "ripple"
	CoinStellar  CoinType = "stellar"
	CoinUSDT     CoinType = "usdt"
	CoinBNB      CoinType = "bnb"
	CoinBNBTiger CoinType = "bnb_tiger"
)

// coinDisplayNames 展示名，用于通知与邮件文案
var coinDisplayNames = map[CoinType]string{
	CoinBitcoin:  "Bitcoin (BTC)",
	CoinEthereum: "Ethereum (ETH)",
	CoinRipple:   "Ripple (XRP)",
	CoinStellar:  "Stellar (XLM)",
	CoinUSDT:     "Tether (USDT)",
	CoinBNB:      "BNB (BNB)",
	CoinBNBTiger: "BNB Tiger",
}

// AllCoins 按固定顺序返回所有币种
func AllCoins() []CoinType {
	return []CoinType{
		CoinBitcoin, CoinEthereum, CoinRipple, CoinStellar,
		CoinUSDT, CoinBNB, CoinBNBTiger,
	}
}

// Valid 校验币种是否受支持
func (c CoinType) Valid() bool {
	_, ok := coinDisplayNames[c]
	return ok
}

// Display 返回币种展示名
func (c CoinType) Display() string {
	if name, ok := coinDisplayNames[c]; ok {
		return name
	}
	return string(c)
}
