package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/services"
)

const defaultConcurrency = 4

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Re-score every property, pending payment and active tenant",
	Long: `Runs the scorers over the whole portfolio:

  properties        suggested price, demand score, occupancy forecasts, risk score
  pending payments  late-payment prediction
  active tenants    behavior risk score

Each update is logged to the prediction log exactly as the API would log it.
A failure on one entity is logged and counted; the run continues and exits
non-zero at the end.

Examples:
  rescore all
  rescore all --concurrency 8 --skip-forecasts`,
	RunE: runAll,
}

func init() {
	f := allCmd.Flags()
	f.Int("concurrency", defaultConcurrency, "maximum entities scored in parallel")
	f.Bool("skip-forecasts", false, "skip occupancy forecasts for properties")
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	skipForecasts, _ := cmd.Flags().GetBool("skip-forecasts")
	if concurrency < 1 {
		return eris.Errorf("rescore: --concurrency must be at least 1 (got %d)", concurrency)
	}

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	repos := services.NewRepositories(db.Pool)
	r := &rescorer{
		ai:                services.NewAIService(repos, log),
		propertyIDs:       repos.Properties.IDs,
		tenantIDs:         repos.Tenants.IDs,
		pendingPaymentIDs: repos.Payments.PendingIDs,
		log:               log.Component("rescore"),
		concurrency:       concurrency,
		skipForecasts:     skipForecasts,
	}

	summary, err := r.run(ctx)
	summary.print(cmd.OutOrStdout())
	return err
}

// idLister returns the ids of one entity kind.
type idLister func(ctx context.Context) ([]int64, error)

type rescorer struct {
	ai                services.AIService
	propertyIDs       idLister
	tenantIDs         idLister
	pendingPaymentIDs idLister
	log               *logger.Logger
	concurrency       int
	skipForecasts     bool
}

type rescoreSummary struct {
	pricing         atomic.Int64
	forecasts       atomic.Int64
	propertyRisk    atomic.Int64
	payments        atomic.Int64
	skippedPayments atomic.Int64
	tenantRisk      atomic.Int64
	failed          atomic.Int64
}

func (s *rescoreSummary) print(w io.Writer) {
	fmt.Fprintf(w, "pricing updated:        %d\n", s.pricing.Load())
	fmt.Fprintf(w, "forecasts computed:     %d\n", s.forecasts.Load())
	fmt.Fprintf(w, "property risk updated:  %d\n", s.propertyRisk.Load())
	fmt.Fprintf(w, "payments predicted:     %d\n", s.payments.Load())
	fmt.Fprintf(w, "payments skipped:       %d\n", s.skippedPayments.Load())
	fmt.Fprintf(w, "tenant risk updated:    %d\n", s.tenantRisk.Load())
	fmt.Fprintf(w, "failed:                 %d\n", s.failed.Load())
}

// run scores properties, then pending payments, then active tenants.
func (r *rescorer) run(ctx context.Context) (*rescoreSummary, error) {
	s := &rescoreSummary{}

	propertyIDs, err := r.propertyIDs(ctx)
	if err != nil {
		return s, eris.Wrap(err, "rescore: list properties")
	}
	if err := r.each(ctx, "property", propertyIDs, s, func(ctx context.Context, id int64) error {
		return r.property(ctx, id, s)
	}); err != nil {
		return s, err
	}

	paymentIDs, err := r.pendingPaymentIDs(ctx)
	if err != nil {
		return s, eris.Wrap(err, "rescore: list pending payments")
	}
	if err := r.each(ctx, "payment", paymentIDs, s, func(ctx context.Context, id int64) error {
		out, err := r.ai.UpdatePaymentPrediction(ctx, id)
		if err != nil {
			return eris.Wrap(err, "payment prediction")
		}
		if out.Skipped {
			s.skippedPayments.Add(1)
		} else {
			s.payments.Add(1)
		}
		return nil
	}); err != nil {
		return s, err
	}

	tenantIDs, err := r.tenantIDs(ctx)
	if err != nil {
		return s, eris.Wrap(err, "rescore: list tenants")
	}
	if err := r.each(ctx, "tenant", tenantIDs, s, func(ctx context.Context, id int64) error {
		if _, err := r.ai.UpdateRiskScores(ctx, &id, nil); err != nil {
			return eris.Wrap(err, "tenant risk")
		}
		s.tenantRisk.Add(1)
		return nil
	}); err != nil {
		return s, err
	}

	if n := s.failed.Load(); n > 0 {
		return s, eris.Errorf("rescore: %d entities failed", n)
	}
	return s, nil
}

func (r *rescorer) property(ctx context.Context, id int64, s *rescoreSummary) error {
	if _, err := r.ai.UpdatePropertyPricing(ctx, id); err != nil {
		return eris.Wrap(err, "pricing")
	}
	s.pricing.Add(1)

	if !r.skipForecasts {
		if _, err := r.ai.UpdatePropertyForecasts(ctx, id); err != nil {
			return eris.Wrap(err, "forecasts")
		}
		s.forecasts.Add(1)
	}

	if _, err := r.ai.UpdateRiskScores(ctx, nil, &id); err != nil {
		return eris.Wrap(err, "property risk")
	}
	s.propertyRisk.Add(1)
	return nil
}

// each runs fn for every id with at most r.concurrency in flight. Entity
// failures are logged and counted; only cancellation stops the batch.
func (r *rescorer) each(ctx context.Context, kind string, ids []int64, s *rescoreSummary, fn func(context.Context, int64) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := fn(gctx, id); err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.failed.Add(1)
				r.log.Error("Rescore failed", err, map[string]interface{}{
					"kind": kind,
					"id":   id,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrapf(err, "rescore: %s batch interrupted", kind)
	}
	return ctx.Err()
}
