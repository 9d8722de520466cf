package kasplex

type txsResponse struct {
	Data []tokenTx `json:"data"`
}

type tokenTx struct {
	TxID       string      `json:"txId"`
	Time       int64       `json:"time"`
	Operations []operation `json:"operations"`
}

type operation struct {
	Op   string `json:"op"`
	To   string `json:"to"`
	From string `json:"from"`
	Tick string `json:"tick"`
	Amt  string `json:"amt"`
}
