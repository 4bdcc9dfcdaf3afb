// Package ofx parses OFX/QFX bank statement exports into statement
// entries the ledger can import.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/calloway/tally/internal/model"

	"github.com/aclindsa/ofxgo"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes common formatting issues in real-world OFX files.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing angle bracket on a
	// tag that ends the line.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX document and returns its statement
// entries, bank and credit card statements combined.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.StatementEntry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []model.StatementEntry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, txn := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(txn))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, txn := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(txn))
			}
		}
	}

	slog.Info("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// convertTransaction maps one OFX transaction to a statement entry,
// keeping the bank's sign convention (negative means money out).
func (p *Parser) convertTransaction(txn ofxgo.Transaction) model.StatementEntry {
	amount, _ := txn.TrnAmt.Float64()
	cents := int64(math.Round(amount * 100))

	return model.StatementEntry{
		FiTID:       string(txn.FiTID),
		Date:        txn.DtPosted.Time,
		Description: p.describe(txn),
		Amount:      model.Money{Cents: cents},
	}
}

// describe picks the most useful description a statement line offers.
func (p *Parser) describe(txn ofxgo.Transaction) string {
	if txn.Payee != nil && txn.Payee.Name != "" {
		return string(txn.Payee.Name)
	}

	name := strings.TrimSpace(string(txn.Name))
	if name == "" && txn.Memo != "" {
		name = strings.TrimSpace(string(txn.Memo))
	}
	return name
}
