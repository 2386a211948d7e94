package collection

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/channel"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tunes a collection service
type Options struct {
	// Window is how far back each collection pass looks
	Window time.Duration
	// FetchTimeout bounds one channel fetch
	FetchTimeout time.Duration
	// Policy decides the fate of duplicate rows
	Policy DuplicatePolicy
}

func (o *Options) setDefaults() {
	if o.Window <= 0 {
		o.Window = 30 * time.Minute
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 2 * time.Minute
	}
	if !o.Policy.IsValid() {
		o.Policy = DuplicatePolicySkip
	}
}

// Service orchestrates order collection across every shipper's marketplace
// channels. One pass fetches each channel's orders, materializes them, and
// appends one collection log per attempt. A failing channel never disturbs
// its siblings.
type Service struct {
	credentials  masterdata.ChannelCredentialRepository
	registry     channel.Registry
	materializer *Materializer
	orders       order.Repository
	logs         order.CollectionLogRepository
	logger       *zap.Logger
	opts         Options
}

// NewService creates a collection Service
func NewService(
	credentials masterdata.ChannelCredentialRepository,
	registry channel.Registry,
	materializer *Materializer,
	orders order.Repository,
	logs order.CollectionLogRepository,
	logger *zap.Logger,
	opts Options,
) *Service {
	opts.setDefaults()
	return &Service{
		credentials:  credentials,
		registry:     registry,
		materializer: materializer,
		orders:       orders,
		logs:         logs,
		logger:       logger,
		opts:         opts,
	}
}

// CollectAll runs one collection pass over every active credential
func (s *Service) CollectAll(ctx context.Context) (RunSummary, error) {
	creds, err := s.credentials.FindActive(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	return s.collect(ctx, creds), nil
}

// CollectForShipper runs one collection pass over one shipper's active
// credentials, optionally narrowed to a single channel
func (s *Service) CollectForShipper(ctx context.Context, shipperID uuid.UUID, channelType *masterdata.ChannelType) (RunSummary, error) {
	creds, err := s.credentials.FindActiveForShipper(ctx, shipperID, channelType)
	if err != nil {
		return RunSummary{}, err
	}
	return s.collect(ctx, creds), nil
}

func (s *Service) collect(ctx context.Context, creds []masterdata.ChannelCredential) RunSummary {
	summary := RunSummary{StartedAt: time.Now()}
	for i := range creds {
		result := s.collectOne(ctx, &creds[i])
		summary.Results = append(summary.Results, result)
	}
	summary.FinishedAt = time.Now()

	s.logger.Info("collection pass finished",
		zap.Int("channels", len(summary.Results)),
		zap.Int("failed_channels", summary.FailedChannels()),
		zap.Int("fetched", summary.TotalFetched()),
		zap.Int("success", summary.TotalSuccess()),
		zap.Int("errors", summary.TotalErrors()),
		zap.Int("duplicates", summary.TotalDuplicates()),
	)
	return summary
}

// collectOne runs the fetch-then-materialize cycle for one credential. The
// fetch completes before any database write starts, so a slow or failing
// marketplace never holds database work hostage.
func (s *Service) collectOne(ctx context.Context, cred *masterdata.ChannelCredential) ChannelResult {
	result := ChannelResult{ChannelType: cred.ChannelType}
	if cred.Shipper != nil {
		result.ShipperName = cred.Shipper.Name
	}

	client, err := s.registry.Get(cred.ChannelType)
	if err != nil {
		return s.channelFailed(ctx, cred, result, err)
	}

	now := time.Now()
	window := channel.Window{Start: now.Add(-s.opts.Window), End: now}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	raws, err := client.FetchOrders(fetchCtx, window, channel.CredentialsFrom(cred))
	cancel()
	if err != nil {
		return s.channelFailed(ctx, cred, result, err)
	}

	result.BatchResult = s.materializeBatch(ctx, stampShipper(raws, result.ShipperName), s.opts.Policy)

	s.appendLog(ctx, cred, result)
	s.touchCredential(ctx, cred, now)

	s.logger.Info("channel collected",
		zap.String("shipper", result.ShipperName),
		zap.String("channel", cred.ChannelType.String()),
		zap.String("result", result.Summary()),
	)
	return result
}

// materializeBatch drives every raw order of one batch to a terminal outcome
func (s *Service) materializeBatch(ctx context.Context, raws []order.RawOrder, policy DuplicatePolicy) BatchResult {
	result := BatchResult{Fetched: len(raws)}
	gate := NewDeduplicationGate(s.orders)
	for i := range raws {
		outcome, err := s.materializer.Materialize(ctx, raws[i], gate, policy)
		switch outcome {
		case RowSuccess:
			result.Success++
		case RowDuplicate:
			result.Duplicates++
		case RowError:
			result.Errors++
			if err != nil {
				result.ErrorNotes = append(result.ErrorNotes, "row lost: "+err.Error())
			}
		}
	}
	return result
}

func (s *Service) channelFailed(ctx context.Context, cred *masterdata.ChannelCredential, result ChannelResult, cause error) ChannelResult {
	result.Failed = true
	result.FailureCause = cause.Error()

	s.logger.Warn("channel collection failed",
		zap.String("shipper", result.ShipperName),
		zap.String("channel", cred.ChannelType.String()),
		zap.Error(cause),
	)

	log, err := order.NewFailedCollectionLog(cred.ShipperID, cred.ChannelType, cause.Error())
	if err == nil {
		err = s.logs.Append(ctx, log)
	}
	if err != nil {
		s.logger.Error("failed to append collection log",
			zap.String("channel", cred.ChannelType.String()),
			zap.Error(err),
		)
	}
	return result
}

func (s *Service) appendLog(ctx context.Context, cred *masterdata.ChannelCredential, result ChannelResult) {
	message := ""
	if result.Errors > 0 {
		message = result.Summary()
		for _, note := range result.ErrorNotes {
			message += "; " + note
		}
	}
	log, err := order.NewCollectionLog(cred.ShipperID, cred.ChannelType,
		result.Fetched, result.Success, result.Errors, message)
	if err == nil {
		err = s.logs.Append(ctx, log)
	}
	if err != nil {
		s.logger.Error("failed to append collection log",
			zap.String("channel", cred.ChannelType.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) touchCredential(ctx context.Context, cred *masterdata.ChannelCredential, at time.Time) {
	cred.TouchUsed(at)
	if err := s.credentials.Save(ctx, cred); err != nil {
		s.logger.Warn("failed to record credential use",
			zap.String("channel", cred.ChannelType.String()),
			zap.Error(err),
		)
	}
}

// stampShipper writes the credential's shipper onto every fetched row. The
// marketplace only knows the seller account; the shipper identity comes from
// the credential that made the call.
func stampShipper(raws []order.RawOrder, shipperName string) []order.RawOrder {
	for i := range raws {
		raws[i].ShipperName = shipperName
	}
	return raws
}
