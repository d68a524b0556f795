package keeper

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/pool/types"
)

const (
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
)

// PoolMetrics holds all Prometheus metrics for the pool module
type PoolMetrics struct {
	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapLatency       prometheus.Histogram
	SwapFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec

	OperationFailures *prometheus.CounterVec
}

var (
	poolMetricsOnce sync.Once
	poolMetrics     *PoolMetrics
)

// NewPoolMetrics creates and registers pool metrics (singleton pattern)
func NewPoolMetrics() *PoolMetrics {
	poolMetricsOnce.Do(func() {
		poolMetrics = &PoolMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"token_in", "token_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "swap_fees_total",
					Help:      "Swap fees withheld from inputs",
				},
				[]string{"denom"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to the pool",
				},
				[]string{"denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from the pool",
				},
				[]string{"denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "reserves",
					Help:      "Current pool reserves",
				},
				[]string{"denom"},
			),
			OperationFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "pool",
					Name:      "operation_failures_total",
					Help:      "Rejected pool operations by reason",
				},
				[]string{"operation", "reason"},
			),
		}
	})
	return poolMetrics
}

// toFloat converts without the int64 range limit of math.Int.Int64.
func toFloat(i math.Int) float64 {
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}

func (m *PoolMetrics) recordReserves(pool types.Pool) {
	m.PoolReserves.WithLabelValues(pool.AssetA).Set(toFloat(pool.ReserveA))
	m.PoolReserves.WithLabelValues(pool.AssetB).Set(toFloat(pool.ReserveB))
}

func (m *PoolMetrics) recordLiquidity(counter *prometheus.CounterVec, info types.PoolInfo, attrs map[string]string) {
	counter.WithLabelValues(info.AssetA).Add(attrFloat(attrs, types.AttributeKeyAmountA))
	counter.WithLabelValues(info.AssetB).Add(attrFloat(attrs, types.AttributeKeyAmountB))
}

func (m *PoolMetrics) recordSwap(denomIn, denomOut string, attrs map[string]string) {
	m.SwapsTotal.WithLabelValues(denomIn, denomOut).Inc()
	m.SwapVolume.WithLabelValues(denomIn).Add(attrFloat(attrs, types.AttributeKeyAmountIn))
	if fee := attrFloat(attrs, types.AttributeKeyFee); fee > 0 {
		m.SwapFeesCollected.WithLabelValues(denomIn).Add(fee)
	}
}

func (m *PoolMetrics) recordFailure(op string, err error) {
	m.OperationFailures.WithLabelValues(op, failureReason(err)).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, types.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, types.ErrInsufficientReserves):
		return "insufficient_reserves"
	case errors.Is(err, types.ErrInsufficientLiquidity):
		return "insufficient_liquidity"
	case errors.Is(err, types.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, types.ErrTransferFailed):
		return "transfer_failed"
	case errors.Is(err, types.ErrSlippageExceeded):
		return "slippage"
	case errors.Is(err, types.ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, types.ErrInvariantViolation):
		return "invariant_violation"
	default:
		return "other"
	}
}

func attrFloat(attrs map[string]string, key string) float64 {
	amount, ok := math.NewIntFromString(attrs[key])
	if !ok {
		return 0
	}
	return toFloat(amount)
}

func eventAttributes(event sdk.Event) map[string]string {
	attrs := make(map[string]string, len(event.Attributes))
	for _, attr := range event.Attributes {
		attrs[attr.Key] = attr.Value
	}
	return attrs
}

func eventOperation(eventType string) (string, bool) {
	switch eventType {
	case types.EventTypeSwappedAforB, types.EventTypeSwappedBforA:
		return opSwap, true
	case types.EventTypeLiquidityAdded:
		return opAddLiquidity, true
	case types.EventTypeLiquidityRemoved:
		return opRemoveLiquidity, true
	default:
		return "", false
	}
}

// RecordCommitted counts the swaps and liquidity changes found in the events
// of a committed state transition. ctx must read the committed state so the
// reserve gauges match it.
func (k Keeper) RecordCommitted(ctx context.Context, events sdk.Events) {
	var touched bool
	for _, event := range events {
		if _, ok := eventOperation(event.Type); ok {
			touched = true
			break
		}
	}
	if !touched {
		return
	}

	pool, err := k.GetPool(ctx)
	if err != nil {
		return
	}
	for _, event := range events {
		attrs := eventAttributes(event)
		switch event.Type {
		case types.EventTypeSwappedAforB:
			k.metrics.recordSwap(pool.AssetA, pool.AssetB, attrs)
		case types.EventTypeSwappedBforA:
			k.metrics.recordSwap(pool.AssetB, pool.AssetA, attrs)
		case types.EventTypeLiquidityAdded:
			k.metrics.recordLiquidity(k.metrics.LiquidityAdded, pool.PoolInfo, attrs)
		case types.EventTypeLiquidityRemoved:
			k.metrics.recordLiquidity(k.metrics.LiquidityRemoved, pool.PoolInfo, attrs)
		}
	}
	k.metrics.recordReserves(pool)
}

// RecordDiscarded counts each pool operation in events as failed with err.
// It is used when a state transition succeeded in the keeper but was thrown
// away before commit.
func (k Keeper) RecordDiscarded(events sdk.Events, err error) {
	for _, event := range events {
		if op, ok := eventOperation(event.Type); ok {
			k.metrics.recordFailure(op, err)
		}
	}
}

// Metrics returns the collectors the keeper reports to.
func (k Keeper) Metrics() *PoolMetrics {
	return k.metrics
}
