package service

import (
	"context"
	"fmt"
	"time"

	"github.com/billingfox/ozonator/internal/archive"
	"github.com/billingfox/ozonator/internal/cache"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/billingfox/ozonator/internal/report"
	"github.com/billingfox/ozonator/internal/repository"
	"github.com/billingfox/ozonator/internal/sales"
	"github.com/billingfox/ozonator/internal/seller"
	"github.com/rs/zerolog/log"
)

// SellerAPI is the slice of the seller client the update pipeline uses.
type SellerAPI interface {
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
	CreatePostingsReport(ctx context.Context, from, to time.Time) (string, error)
	WaitForReport(ctx context.Context, code string, opts seller.ReportWaitOptions) (string, error)
	DownloadReport(ctx context.Context, fileURL string) ([]byte, error)
	GetWarehouseStocks(ctx context.Context) ([]domain.StockRecord, error)
	GetStockOnWarehouses(ctx context.Context) ([]domain.TransitRecord, error)
}

// UpdateConfig are the tunables of one service instance.
type UpdateConfig struct {
	Cooldown    time.Duration
	WaitOpts    seller.ReportWaitOptions
	SalesPeriod time.Duration
}

// UpdateService runs the full refresh: catalog, sales report pipeline,
// transit, stocks, then the last-update timestamp.
type UpdateService struct {
	api          SellerAPI
	fetcher      *sales.Fetcher
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	transitRepo  repository.TransitRepository
	salesRepo    repository.SalesRepository
	updateRepo   repository.UpdateInfoRepository
	archiveStore archive.Store
	demandCache  cache.DemandCache
	locker       Locker
	cfg          UpdateConfig
	now          func() time.Time
}

func NewUpdateService(
	api SellerAPI,
	fetcher *sales.Fetcher,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	transitRepo repository.TransitRepository,
	salesRepo repository.SalesRepository,
	updateRepo repository.UpdateInfoRepository,
	archiveStore archive.Store,
	demandCache cache.DemandCache,
	locker Locker,
	cfg UpdateConfig,
) *UpdateService {
	if archiveStore == nil {
		archiveStore = archive.NewNoopStore()
	}
	if demandCache == nil {
		demandCache = cache.NewNoopDemandCache()
	}
	if locker == nil {
		locker = NewNoopLocker()
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = time.Minute
	}
	if cfg.SalesPeriod <= 0 {
		cfg.SalesPeriod = 30 * 24 * time.Hour
	}
	if cfg.WaitOpts.MaxAttempts <= 0 {
		cfg.WaitOpts = seller.DefaultReportWaitOptions()
	}
	return &UpdateService{
		api:          api,
		fetcher:      fetcher,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		transitRepo:  transitRepo,
		salesRepo:    salesRepo,
		updateRepo:   updateRepo,
		archiveStore: archiveStore,
		demandCache:  demandCache,
		locker:       locker,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Run executes the full update and returns its stage report. The report
// is returned even on failure, with the terminal error recorded.
//
// The cooldown check is advisory: it compares against the stored
// last-update timestamp without any atomicity, so two callers racing
// past it can both proceed. Callers that must prevent that enable the
// redis locker; the timestamp alone does not serialize anything.
func (s *UpdateService) Run(ctx context.Context) (*RunReport, error) {
	rep := &RunReport{StartedAt: s.now()}

	if err := s.checkCooldown(ctx); err != nil {
		return s.fail(rep, err)
	}
	rep.addEvent(s.now(), StageCooldown, "cooldown passed", 0, 0)

	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return s.fail(rep, err)
	}
	defer release()

	productCount, err := s.runProductsStage(ctx, rep)
	if err != nil {
		return s.fail(rep, err)
	}

	if err := s.runSalesStage(ctx, rep); err != nil {
		return s.fail(rep, err)
	}

	if err := s.runTransitStage(ctx, rep); err != nil {
		return s.fail(rep, err)
	}

	if err := s.runStocksStage(ctx, rep); err != nil {
		return s.fail(rep, err)
	}

	if err := s.updateRepo.Save(ctx, productCount); err != nil {
		return s.fail(rep, fmt.Errorf("could not record update: %w", err))
	}
	if err := s.demandCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("could not invalidate demand cache")
	}

	rep.addEvent(s.now(), StageFinish, "all data updated", productCount, 0)
	rep.Success = true
	rep.FinishedAt = s.now()
	return rep, nil
}

func (s *UpdateService) checkCooldown(ctx context.Context) error {
	info, err := s.updateRepo.GetLast(ctx)
	if err != nil {
		return fmt.Errorf("could not read last update info: %w", err)
	}
	if info == nil {
		return nil
	}
	elapsed := s.now().Sub(info.LastUpdate)
	if elapsed < s.cfg.Cooldown {
		remaining := (s.cfg.Cooldown - elapsed).Round(time.Second)
		return fmt.Errorf("%w: next update available in %s", domain.ErrUpdateCooldown, remaining)
	}
	return nil
}

func (s *UpdateService) runProductsStage(ctx context.Context, rep *RunReport) (int, error) {
	products, err := s.api.FetchCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not fetch catalog: %w", err)
	}
	saved, err := s.productRepo.UpsertBatch(ctx, products)
	if err != nil {
		return 0, fmt.Errorf("could not save products: %w", err)
	}
	rep.addEvent(s.now(), StageProducts, "products saved", saved, 0)
	return saved, nil
}

// runSalesStage drives the report pipeline: submit, poll, download,
// parse, enrich, aggregate, replace. Everything except per-posting
// enrichment is fail-fast.
func (s *UpdateService) runSalesStage(ctx context.Context, rep *RunReport) error {
	to := s.now()
	from := to.Add(-s.cfg.SalesPeriod)

	code, err := s.api.CreatePostingsReport(ctx, from, to)
	if err != nil {
		return fmt.Errorf("sales report submit failed: %w", err)
	}

	fileURL, err := s.api.WaitForReport(ctx, code, s.cfg.WaitOpts)
	if err != nil {
		return fmt.Errorf("sales report wait failed: %w", err)
	}

	body, err := s.api.DownloadReport(ctx, fileURL)
	if err != nil {
		return fmt.Errorf("sales report download failed: %w", err)
	}
	if key, err := s.archiveStore.SaveReport(ctx, s.now(), body); err != nil {
		log.Warn().Err(err).Msg("could not archive report file")
	} else if key != "" {
		log.Info().Str("key", key).Msg("report file archived")
	}

	numbers := report.ExtractPostingNumbers(string(body))
	if len(numbers) == 0 {
		return fmt.Errorf("report contains no postings: %w", domain.ErrNoDataAvailable)
	}

	records, skipped, err := s.fetcher.Fetch(ctx, numbers)
	if err != nil {
		return fmt.Errorf("posting enrichment failed: %w", err)
	}

	aggregates := sales.Aggregate(records)
	saved, err := s.salesRepo.ReplaceAll(ctx, aggregates)
	if err != nil {
		return fmt.Errorf("could not save sales data: %w", err)
	}
	rep.addEvent(s.now(), StageSales, "sales data replaced", saved, skipped)
	return nil
}

func (s *UpdateService) runTransitStage(ctx context.Context, rep *RunReport) error {
	records, err := s.api.GetStockOnWarehouses(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch transit data: %w", err)
	}
	saved, err := s.transitRepo.UpsertBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("could not save transit data: %w", err)
	}
	rep.addEvent(s.now(), StageTransit, "transit data saved", saved, 0)
	return nil
}

func (s *UpdateService) runStocksStage(ctx context.Context, rep *RunReport) error {
	records, err := s.api.GetWarehouseStocks(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch stock data: %w", err)
	}
	saved, err := s.stockRepo.UpsertBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("could not save stock data: %w", err)
	}
	rep.addEvent(s.now(), StageStocks, "stock data saved", saved, 0)
	return nil
}

func (s *UpdateService) fail(rep *RunReport, err error) (*RunReport, error) {
	rep.Success = false
	rep.Error = err.Error()
	rep.FinishedAt = s.now()
	log.Error().Err(err).Msg("update run failed")
	return rep, err
}
