package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/delivery/console"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
)

var recommendFlags struct {
	cash    float64
	date    string
	tickers []string
	yes     bool
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Interactively build a sell list and a budget-fitted buy list",
	Long: `Prompts for expendable cash, the news date and extra tickers, then prints
the sell list and the buy list. Any prompt can be answered up front with a flag;
--yes skips the cash confirmation.`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.Float64Var(&recommendFlags.cash, "cash", -1, "expendable cash")
	f.StringVar(&recommendFlags.date, "date", "", "news publication date, YYYY-MM-DD")
	f.StringSliceVar(&recommendFlags.tickers, "tickers", nil, "extra tickers, comma separated")
	f.BoolVarP(&recommendFlags.yes, "yes", "y", false, "accept --cash without confirmation")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	param, err := collectParam(cmd)
	if err != nil {
		if errors.Is(err, console.ErrAborted) {
			return nil
		}
		return err
	}

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		return fmt.Errorf("failed to create app dependency: %w", err)
	}
	defer func() { _ = appDep.Close() }()

	services, err := appDep.Services()
	if err != nil {
		return err
	}

	appDep.log.Info("starting recommendation",
		logger.Float64Field("budget", param.Budget),
		logger.StringField("news_date", utils.FormatDate(param.NewsDate)),
		logger.StringsField("extra_tickers", param.ExtraTickers),
	)

	result, err := services.RecommendationService.Recommend(ctx, param)
	if err != nil {
		return err
	}
	console.PrintResult(cmd.OutOrStdout(), result)
	return nil
}

// collectParam fills every value not given as a flag from the terminal.
func collectParam(cmd *cobra.Command) (dto.RecommendationParam, error) {
	p := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	param := dto.RecommendationParam{Trigger: common.TRIGGER_CONSOLE}

	switch {
	case cmd.Flags().Changed("cash") && recommendFlags.cash < 0:
		return param, fmt.Errorf("--cash must not be negative")
	case cmd.Flags().Changed("cash") && recommendFlags.yes:
		param.Budget = recommendFlags.cash
	case cmd.Flags().Changed("cash"):
		ok, err := p.Confirm(fmt.Sprintf("Use $%.2f as expendable cash? Enter Y/N: ", recommendFlags.cash))
		if err != nil {
			return param, err
		}
		if ok {
			param.Budget = recommendFlags.cash
			break
		}
		budget, err := p.AskBudget()
		if err != nil {
			return param, err
		}
		param.Budget = budget
	default:
		budget, err := p.AskBudget()
		if err != nil {
			return param, err
		}
		param.Budget = budget
	}

	if recommendFlags.date != "" {
		date, err := utils.ParseDate(recommendFlags.date)
		if err != nil {
			return param, err
		}
		param.NewsDate = date
	} else {
		date, err := p.AskNewsDate()
		if err != nil {
			return param, err
		}
		param.NewsDate = date
	}

	if cmd.Flags().Changed("tickers") {
		param.ExtraTickers = allocation.NormalizeSymbols(recommendFlags.tickers)
	} else {
		tickers, err := p.AskExtraTickers()
		if err != nil {
			return param, err
		}
		param.ExtraTickers = tickers
	}

	if param.NewsDate.After(time.Now()) {
		fmt.Fprintln(cmd.OutOrStdout(), "Note: the news date is in the future, expect no articles.")
	}
	return param, nil
}
