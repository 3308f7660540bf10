package interact

import (
	"bytes"
	"context"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/metrics"
	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/interactdapp"
)

// Mode selects whether protocol programs are called directly or through the
// interact-dapp proxy program
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeProxy  Mode = "proxy"
)

const (
	protocolLending = "jupiter_lend"
	protocolVaults  = "jupiter_vaults"
	protocolClmm    = "raydium_clmm"
)

func (i *Invoker) mode(ctx context.Context) Mode {
	if i.conf.useProxy.Get(ctx) {
		return ModeProxy
	}
	return ModeDirect
}

// proxyInstructionIndex returns the position of the last proxy program
// instruction, or -1 if there is none
func proxyInstructionIndex(instructions []solana.Instruction) int {
	for idx := len(instructions) - 1; idx >= 0; idx-- {
		if bytes.Equal(instructions[idx].Program, interactdapp.PROGRAM_ADDRESS) {
			return idx
		}
	}
	return -1
}

type instructionBuilder func(mode Mode) ([]solana.Instruction, error)

// invokeWrapped runs a protocol operation end to end. Failures are reported
// under the protocol's sentinel.
func (i *Invoker) invokeWrapped(
	ctx context.Context,
	protocol, operation string,
	mode Mode,
	sentinel error,
	fields logrus.Fields,
	build instructionBuilder,
) (*Invocation, error) {
	log := i.log.WithFields(logrus.Fields{
		"method":   operation,
		"protocol": protocol,
		"mode":     mode,
		"cluster":  i.cluster,
	}).WithFields(fields)

	tracer := metrics.TraceMethodCall(ctx, metricsStructName, operation)
	defer tracer.End()
	tracer.AddAttributes(map[string]interface{}{
		"protocol": protocol,
		"mode":     string(mode),
	})

	start := time.Now()

	var invocation *Invocation
	proxyIndex := -1
	instructions, err := build(mode)
	if err == nil {
		budget := i.computeBudgetInstructions(ctx)
		if mode == ModeProxy {
			if idx := proxyInstructionIndex(instructions); idx >= 0 {
				proxyIndex = len(budget) + idx
			}
		}
		invocation, err = i.invoke(ctx, budget, instructions, nil)
	}
	err = wrapInvocationError(err, sentinel, proxyIndex)

	recordInvocationEvent(ctx, protocol, operation, mode, time.Since(start), err)
	if invocation != nil && err == nil {
		recordComputeUnits(ctx, invocation.UnitsConsumed)
	}

	if err != nil {
		tracer.OnError(err)
		log.WithError(err).Warn("invocation failed")
		return nil, err
	}

	log.WithField("signature", base58.Encode(invocation.Signature[:])).Info("invocation succeeded")
	return invocation, nil
}
