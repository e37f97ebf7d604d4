// Package promptpay builds EMVCo merchant presented QR payloads for Thai PromptPay.
// The result is the string a QR encoder renders; this package does not draw images.
package promptpay

//go:generate go run go.uber.org/mock/mockgen -source=./promptpay.go -destination=./mocks/promptpay_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	idPayloadFormat   = "00"
	idPOIMethod       = "01"
	idMerchantInfo    = "29"
	idTransactionCurr = "53"
	idTransactionAmt  = "54"
	idCountryCode     = "58"
	idCRC             = "63"

	idMerchantAID     = "00"
	idMerchantPhone   = "01"
	idMerchantTaxID   = "02"
	idMerchantEWallet = "03"

	payloadFormatEMVCo = "01"
	poiStatic          = "11"
	poiDynamic         = "12"
	guidPromptPay      = "A000000677010111"
	currencyTHB        = "764"
	countryTH          = "TH"

	phoneLength   = 13
	taxIDLength   = 13
	eWalletLength = 15
)

var (
	ErrEmptyTarget   = errors.New("promptpay target is empty")
	ErrInvalidTarget = errors.New("promptpay target must be a phone number, tax id or e-wallet id")
	ErrInvalidAmount = errors.New("promptpay amount must be positive")
)

type Generator interface {
	GeneratePayable(amount decimal.Decimal, target string) (string, error)
}

type generatorImpl struct{}

func New() Generator {
	return &generatorImpl{}
}

// GeneratePayable returns a dynamic payload for amount payable to target.
// A zero amount yields a static payload where the payer types the amount.
func (g *generatorImpl) GeneratePayable(amount decimal.Decimal, target string) (string, error) {
	if amount.IsNegative() {
		return "", ErrInvalidAmount
	}

	targetID, account, err := formatTarget(target)
	if err != nil {
		return "", err
	}

	poi := poiStatic
	if amount.IsPositive() {
		poi = poiDynamic
	}

	var b strings.Builder

	b.WriteString(field(idPayloadFormat, payloadFormatEMVCo))
	b.WriteString(field(idPOIMethod, poi))
	b.WriteString(field(idMerchantInfo, field(idMerchantAID, guidPromptPay)+field(targetID, account)))
	b.WriteString(field(idCountryCode, countryTH))
	b.WriteString(field(idTransactionCurr, currencyTHB))

	if amount.IsPositive() {
		b.WriteString(field(idTransactionAmt, amount.StringFixed(2)))
	}

	b.WriteString(idCRC + "04")

	payload := b.String()

	return payload + fmt.Sprintf("%04X", crc16(payload)), nil
}

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// formatTarget picks the sub tag from the digit count. Phone numbers are converted from the
// local 0XXXXXXXXX form to 0066XXXXXXXXX.
func formatTarget(target string) (string, string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, target)

	switch {
	case digits == "":
		return "", "", ErrEmptyTarget
	case len(digits) == eWalletLength:
		return idMerchantEWallet, digits, nil
	case len(digits) == taxIDLength:
		return idMerchantTaxID, digits, nil
	case len(digits) == 10 && digits[0] == '0':
		phone := "66" + digits[1:]

		return idMerchantPhone, strings.Repeat("0", phoneLength-len(phone)) + phone, nil
	case len(digits) == 11 && strings.HasPrefix(digits, "66"):
		return idMerchantPhone, "00" + digits, nil
	default:
		return "", "", ErrInvalidTarget
	}
}

// crc16 is CRC-16/CCITT-FALSE: polynomial 0x1021, initial value 0xFFFF.
func crc16(data string) uint16 {
	crc := uint16(0xFFFF)

	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8

		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}
