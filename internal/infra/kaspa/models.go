package kaspa

type fullTransaction struct {
	TransactionID string     `json:"transaction_id"`
	BlockTime     int64      `json:"block_time"`
	Outputs       []txOutput `json:"outputs"`
	Inputs        []txInput  `json:"inputs"`
}

type txOutput struct {
	Amount                 uint64 `json:"amount"`
	ScriptPublicKeyAddress string `json:"script_public_key_address"`
}

type txInput struct {
	PreviousOutpointAddress string `json:"previous_outpoint_address"`
}
