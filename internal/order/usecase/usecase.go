package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/order"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/internal/pricing"
	"github.com/fekuna/perfume-order-service/internal/validation"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const lockKeyPrefix = "lock:order:submit:"

type SheetNames struct {
	AI              string
	Perfumer        string
	Shipping        string
	ShippingAliases []string
	Errors          string
}

type Options struct {
	Pricing  pricing.Table
	Location *time.Location
	Sheets   SheetNames
	LockTTL  time.Duration
	// Now is overridable for tests.
	Now func() time.Time
}

func DefaultOptions() Options {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return Options{
		Pricing:  pricing.DefaultTable,
		Location: loc,
		Sheets: SheetNames{
			AI:              "ai base",
			Perfumer:        "perfumer base",
			Shipping:        "shipping",
			ShippingAliases: []string{"Shipping Information", "배송양식"},
			Errors:          "errors",
		},
		LockTTL: 30 * time.Second,
		Now:     time.Now,
	}
}

type orderUseCase struct {
	repo      order.Repository
	notifier  order.Notifier
	publisher order.Publisher
	locker    order.Locker
	opts      Options
	logger    logger.ZapLogger
}

// NewOrderUseCase builds the order pipeline. notifier, publisher and locker are optional.
func NewOrderUseCase(repo order.Repository, notifier order.Notifier, publisher order.Publisher, locker order.Locker, opts Options, log logger.ZapLogger) order.UseCase {
	def := DefaultOptions()
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pricing == (pricing.Table{}) {
		opts.Pricing = def.Pricing
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = def.LockTTL
	}
	if opts.Sheets.AI == "" {
		opts.Sheets.AI = def.Sheets.AI
	}
	if opts.Sheets.Perfumer == "" {
		opts.Sheets.Perfumer = def.Sheets.Perfumer
	}
	if opts.Sheets.Shipping == "" {
		opts.Sheets.Shipping = def.Sheets.Shipping
		opts.Sheets.ShippingAliases = def.Sheets.ShippingAliases
	}
	if opts.Sheets.Errors == "" {
		opts.Sheets.Errors = def.Sheets.Errors
	}

	return &orderUseCase{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		locker:    locker,
		opts:      opts,
		logger:    log,
	}
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResult, error) {
	category := req.OrderType
	o := req.Order()

	if err := validation.ValidateOrder(category, o, req.FavoriteInfo); err != nil {
		return nil, err
	}

	release, err := uc.acquire(ctx, req)
	if err != nil {
		return nil, err
	}
	succeeded := false
	defer func() {
		if !succeeded {
			release()
		}
	}()

	quote := uc.opts.Pricing.QuoteOrder(o)
	if req.TotalAmount != 0 && req.TotalAmount != quote.Total {
		uc.logger.Warn("client total differs from server quote",
			zap.Int64("client_total", req.TotalAmount),
			zap.Int64("server_total", quote.Total),
		)
	}

	sheetName := uc.opts.Sheets.AI
	if category == model.CategoryPerfumer {
		sheetName = uc.opts.Sheets.Perfumer
	}
	sheet, err := uc.ensureSheet(ctx, headersFor(category), sheetName)
	if err != nil {
		return nil, err
	}

	placedAt := uc.opts.Now().In(uc.opts.Location)
	number := GenerateOrderNumber(category.Prefix(), placedAt)

	row := summaryRow(number, placedAt, category, o, req.FavoriteInfo, quote)
	if err := uc.append(ctx, sheet, []model.Row{row}); err != nil {
		return nil, err
	}

	if len(req.ShippingFormat) > 0 {
		shipSheet, err := uc.ensureSheet(ctx, shippingHeaders, uc.opts.Sheets.Shipping, uc.opts.Sheets.ShippingAliases...)
		if err != nil {
			return nil, err
		}
		if err := uc.append(ctx, shipSheet, shippingRows(req.ShippingFormat, placedAt)); err != nil {
			return nil, err
		}
	}
	succeeded = true

	uc.logger.Info("order placed",
		zap.String("order_number", number),
		zap.String("category", string(category)),
		zap.Int64("total", quote.Total),
	)

	result := &dto.PlaceOrderResult{
		OrderNumber: number,
		PlacedAt:    placedAt,
		Quote:       quote,
	}
	result.NotifiedRecipients = uc.notify(ctx, result, category, o, req.FavoriteInfo)
	uc.publish(ctx, result, category, o)
	return result, nil
}

func (uc *orderUseCase) RecordFailure(ctx context.Context, failure *dto.FailureRecord) error {
	if failure.At.IsZero() {
		failure.At = uc.opts.Now().In(uc.opts.Location)
	}
	sheet, err := uc.ensureSheet(ctx, errorHeaders, uc.opts.Sheets.Errors)
	if err != nil {
		return err
	}
	return uc.append(ctx, sheet, []model.Row{errorRow(failure)})
}

// ensureSheet returns the first existing sheet among name and aliases,
// creating name with headers when none exist.
func (uc *orderUseCase) ensureSheet(ctx context.Context, headers []string, name string, aliases ...string) (*model.Sheet, error) {
	names := append([]string{name}, aliases...)
	sheet, err := uc.repo.FindSheet(ctx, names...)
	if err != nil {
		return nil, errors.Wrapf(err, "find sheet %q", name)
	}
	if sheet != nil {
		return sheet, nil
	}

	sheet = &model.Sheet{
		Name:      name,
		Headers:   append([]string(nil), headers...),
		CreatedAt: uc.opts.Now(),
	}
	if err := uc.repo.CreateSheet(ctx, sheet); err != nil {
		return nil, errors.Wrapf(err, "create sheet %q", name)
	}
	uc.logger.Info("sheet created", zap.String("sheet", name), zap.Int("columns", len(headers)))
	return sheet, nil
}

func (uc *orderUseCase) append(ctx context.Context, sheet *model.Sheet, rows []model.Row) error {
	for _, row := range rows {
		if len(row) != len(sheet.Headers) {
			return errors.Wrapf(order.ErrColumnMismatch, "sheet %q has %d columns, row has %d",
				sheet.Name, len(sheet.Headers), len(row))
		}
	}
	if err := uc.repo.AppendRows(ctx, sheet.Name, rows); err != nil {
		return errors.Wrapf(err, "append to sheet %q", sheet.Name)
	}
	return nil
}

// acquire takes the duplicate-submission lock for req. The returned func releases it.
func (uc *orderUseCase) acquire(ctx context.Context, req *dto.PlaceOrderRequest) (func(), error) {
	noop := func() {}
	if uc.locker == nil {
		return noop, nil
	}

	key, err := submissionKey(req)
	if err != nil {
		return nil, err
	}
	token := uuid.New().String()

	ok, err := uc.locker.AcquireLock(ctx, key, token, uc.opts.LockTTL)
	if err != nil {
		// Lock store outages must not block orders.
		uc.logger.Warn("submit lock unavailable", zap.Error(err))
		return noop, nil
	}
	if !ok {
		return nil, order.ErrDuplicateSubmission
	}

	return func() {
		if err := uc.locker.ReleaseLock(context.Background(), key, token); err != nil {
			uc.logger.Warn("failed to release submit lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func submissionKey(req *dto.PlaceOrderRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "marshal submission")
	}
	sum := sha256.Sum256(b)
	return lockKeyPrefix + hex.EncodeToString(sum[:]), nil
}

func (uc *orderUseCase) notify(ctx context.Context, res *dto.PlaceOrderResult, category model.Category, o model.Order, fav *model.FavoriteProfile) int {
	if uc.notifier == nil {
		return 0
	}

	n := &dto.OrderNotification{
		OrderNumber:   res.OrderNumber,
		Category:      category,
		CategoryLabel: categoryLabel(category),
		PlacedAt:      res.PlacedAt,
		Order:         o,
		Quote:         res.Quote,
	}
	if category == model.CategoryPerfumer {
		n.Favorite = fav
	}

	report := uc.notifier.NotifyOrderPlaced(ctx, n)
	if !report.OK() {
		uc.logger.Warn("order notification incomplete",
			zap.String("order_number", res.OrderNumber),
			zap.Strings("failed", report.FailedRecipients()),
		)
	} else {
		uc.logger.Debug("order notification", zap.String("order_number", res.OrderNumber), zap.Stringer("report", report))
	}
	return len(report.Sent)
}

func (uc *orderUseCase) publish(ctx context.Context, res *dto.PlaceOrderResult, category model.Category, o model.Order) {
	if uc.publisher == nil {
		return
	}

	event := &dto.OrderPlacedEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventOrderPlaced,
		Timestamp: res.PlacedAt.UTC(),
		Payload: dto.OrderPlacedPayload{
			OrderNumber:  res.OrderNumber,
			OrderType:    string(category),
			Quantity10ml: o.Small.Quantity,
			Quantity50ml: o.Large.Quantity,
			Subtotal:     res.Quote.Subtotal,
			Shipping:     res.Quote.Shipping,
			Total:        res.Quote.Total,
		},
	}
	if err := uc.publisher.PublishOrderPlaced(ctx, event); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_number", res.OrderNumber),
			zap.Error(err),
		)
	}
}
