package di

import (
	"context"
	"fmt"
	"strings"

	"BrentLens/internal/domain/repository"
	"BrentLens/internal/handler/api"
	internalrepo "BrentLens/internal/repository"
	"BrentLens/internal/usecase"
	pkgch "BrentLens/pkg/clickhouse"
	"BrentLens/pkg/config"
	xhttp "BrentLens/pkg/http"
	applogger "BrentLens/pkg/logger"
	"BrentLens/pkg/metrics"
	"BrentLens/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

// ProvideTables maps the dataset section onto table specs for the configured source.
func ProvideTables(cfg *config.Config) internalrepo.Tables {
	d := cfg.Dataset
	spec := func(name string, t config.TableConfig, dateCol, valueCol string) internalrepo.TableSpec {
		return internalrepo.TableSpec{
			Name:        name,
			Path:        cfg.ResolvePath(t.Path),
			Table:       qualifyTable(cfg.ClickHouse.Database, t.Table),
			OrderBy:     t.OrderBy,
			DateColumn:  dateCol,
			ValueColumn: valueCol,
		}
	}
	return internalrepo.Tables{
		Prices: spec("prices", d.Prices,
			d.Prices.Column("date", "Date"), d.Prices.Column("price", "Price")),
		Events: spec("events", d.Events,
			d.Events.Column("date", "date"), d.Events.Column("description", "description")),
		ChangePoints: spec("change_points", d.ChangePoints,
			d.ChangePoints.Column("date", "Change_dates"), ""),
	}
}

func qualifyTable(database, table string) string {
	if table == "" || database == "" || strings.Contains(table, ".") {
		return table
	}
	return database + "." + table
}

// ProvideSource opens the configured dataset source. The cleanup func closes it.
func ProvideSource(cfg *config.Config, tables internalrepo.Tables, l *applogger.Logger) (repository.Source, func(), error) {
	switch cfg.Dataset.Source {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithMaxConnections(4, 2),
			pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
			pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("clickhouse client: %w", err)
		}
		src := internalrepo.NewClickHouseSource(client, tables)
		src.SetLogger(l)
		return src, closeSource(src, l), nil
	case "csv":
		src := internalrepo.NewCSVSource(tables)
		src.SetLogger(l)
		return src, closeSource(src, l), nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

func closeSource(src repository.Source, l *applogger.Logger) func() {
	return func() {
		if err := src.Close(); err != nil {
			l.Warn("source close error", applogger.String("source", src.Name()), applogger.Error(err))
		}
	}
}

// ProvideDataset loads every table once. Any failure aborts startup.
func ProvideDataset(cfg *config.Config, src repository.Source, m repository.Metrics, l *applogger.Logger) (*usecase.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Dataset.LoadTimeout)
	defer cancel()

	ds, err := usecase.LoadDataset(ctx, src, m, l)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return ds, nil
}

// ProvideQueryService creates the read-side use case.
func ProvideQueryService(cfg *config.Config, ds *usecase.Dataset, m repository.Metrics) *usecase.QueryService {
	return usecase.NewQueryService(ds, cfg.Dataset.WindowDays, m)
}

// ProvideHandler creates the dashboard API handler.
func ProvideHandler(l *applogger.Logger, q *usecase.QueryService, ds *usecase.Dataset) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, q, ds)
}

// ProvideHTTPServer creates the Echo server from the server and metrics sections.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.SlowThreshold),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}
