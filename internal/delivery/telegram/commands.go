package telegram

import (
	"errors"
	"strings"
)

const HelpText = `Kaspa Alert Bot Commands:
/start - Show welcome message and menu
/setaddress <kaspa:address> - Set your Kaspa address
/setkrc20 <TICKER> - Set KRC20 token ticker to monitor (uppercase)
/mystatus - Show your current settings and last seen data
/removeaddress - Remove Kaspa address
/removekrc20 - Remove KRC20 ticker
/help - Show this help message

The bot checks for new transactions every 5 minutes (configurable).`

var ErrInvalidArguments = errors.New("invalid arguments")

const (
	addressPrefix = "kaspa:"
	addressMinLen = 65
	addressMaxLen = 85
)

func ParseAddressArg(args string) (string, error) {
	address := strings.TrimSpace(args)
	if address == "" {
		return "", ErrInvalidArguments
	}
	if !strings.HasPrefix(address, addressPrefix) {
		return "", ErrInvalidArguments
	}
	if len(address) < addressMinLen || len(address) > addressMaxLen {
		return "", ErrInvalidArguments
	}
	return address, nil
}

func ParseTickerArg(args string) (string, error) {
	ticker := strings.ToUpper(strings.TrimSpace(args))
	if ticker == "" {
		return "", ErrInvalidArguments
	}
	return ticker, nil
}
