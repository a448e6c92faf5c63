package batch

import (
	"context"
	"customer-service/internal/domain/customer"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CustomerStatsJob publishes aggregate customer gauges.
type CustomerStatsJob struct {
	customerService customer.CustomerService
	logger          *slog.Logger

	customers  prometheus.Gauge
	ageAverage prometheus.Gauge
}

func NewCustomerStatsJob(customerSvc customer.CustomerService, reg prometheus.Registerer, logger *slog.Logger) *CustomerStatsJob {
	if customerSvc == nil || reg == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	factory := promauto.With(reg)
	return &CustomerStatsJob{
		customerService: customerSvc,
		logger:          logger.With("job", "CustomerStats"),
		customers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "customer_service",
			Name:      "customers",
			Help:      "Number of registered customers.",
		}),
		ageAverage: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "customer_service",
			Name:      "customer_age_average",
			Help:      "Average age of registered customers.",
		}),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting customer stats job.")

	customers, err := j.customerService.GetAllCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, gauges left unchanged.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	var ageSum int
	for _, c := range customers {
		ageSum += c.Age
	}
	average := 0.0
	if len(customers) > 0 {
		average = float64(ageSum) / float64(len(customers))
	}

	j.customers.Set(float64(len(customers)))
	j.ageAverage.Set(average)

	j.logger.InfoContext(ctx, "Customer stats job finished.",
		slog.Int("customers", len(customers)),
		slog.Float64("age_average", average),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
