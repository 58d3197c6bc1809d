// Package console is the interactive front end of the recommend command. It
// turns free-form terminal answers into a validated RecommendationParam and
// prints the resulting lists.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/utils"
)

// DoneToken ends the extra ticker prompt.
const DoneToken = "DONE"

// ErrAborted is returned when input ends before a prompt was answered.
var ErrAborted = errors.New("input closed before all prompts were answered")

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskBudget repeats until a non-negative amount is entered and confirmed with Y.
func (p *Prompter) AskBudget() (float64, error) {
	for {
		answer, err := p.ask("Enter current expendable cash: ")
		if err != nil {
			return 0, err
		}
		cash, err := ParseBudget(answer)
		if err != nil {
			fmt.Fprintln(p.out, err.Error())
			continue
		}

		ok, err := p.Confirm("Confirm Amount. Enter Y/N: ")
		if err != nil {
			return 0, err
		}
		if ok {
			return cash, nil
		}
	}
}

// Confirm asks a yes/no question. Only Y (any case) counts as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// AskNewsDate repeats until a YYYY-MM-DD date is entered.
func (p *Prompter) AskNewsDate() (time.Time, error) {
	for {
		answer, err := p.ask("Enter date of news desired (Ex. 2023-12-22): ")
		if err != nil {
			return time.Time{}, err
		}
		date, err := utils.ParseDate(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter the date as YYYY-MM-DD.")
			continue
		}
		return date, nil
	}
}

// AskExtraTickers collects one ticker per line until DoneToken.
func (p *Prompter) AskExtraTickers() ([]string, error) {
	fmt.Fprintf(p.out, "\nAdd any tickers. If you dont want any additional tickers or are done, input %s\n", DoneToken)
	var tickers []string
	for {
		answer, err := p.ask("")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(answer, DoneToken) {
			return allocation.NormalizeSymbols(tickers), nil
		}
		tickers = append(tickers, answer)
	}
}

// ParseBudget accepts amounts like "1000", "$1,250.50".
func ParseBudget(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	cash, err := strconv.ParseFloat(clean, 64)
	if err != nil || cash < 0 || math.IsNaN(cash) || math.IsInf(cash, 0) {
		return 0, fmt.Errorf("%q is not a valid amount, please enter a non-negative number", s)
	}
	return cash, nil
}

// PrintResult writes the sell and buy lists in the order they were produced.
func PrintResult(out io.Writer, result *dto.RecommendationResult) {
	fmt.Fprintln(out, "\nSell List:")
	for _, s := range result.Sells {
		fmt.Fprintln(out, s)
	}
	fmt.Fprintln(out, "\nBuy List:")
	for _, b := range result.Buys {
		fmt.Fprintf(out, "%s: %d shares @ $%.2f\n", b.Symbol, b.Shares, b.Price)
	}
	fmt.Fprintf(out, "\nTotal Cost: $%.2f of $%.2f\n\n", result.TotalCost, result.Budget)
}
