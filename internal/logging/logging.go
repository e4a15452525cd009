// Package logging wires zerolog for the sdmdecode/sdmfixture CLIs.
package logging

import (
	"encoding/hex"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets up the global zerolog logger. human selects a console
// writer over JSON output; debug lowers the minimum level.
func Init(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		})
	} else {
		log.Logger = base
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// NewCorrelationID returns a fresh correlation ID for one CLI invocation.
func NewCorrelationID() string {
	return uuid.NewString()
}

// LogDecodeAttempt logs the inbound triple before any cryptographic work,
// identifying it by its SDMMAC (never by decrypted UID, which isn't
// known yet, and never by key material).
func LogDecodeAttempt(correlationID string, piccEnc, sdmmac []byte) {
	log.Info().
		Str("event", "decode_attempt").
		Str("correlation_id", correlationID).
		Int("picc_len", len(piccEnc)).
		Str("sdmmac_hex", hex.EncodeToString(sdmmac)).
		Msg("decoding SUN message")
}

// LogDecodeOutcome logs the result of a decode: success with the
// decrypted UID and counter, or failure with the error kind — never the
// full error text, which may embed a cause chain.
func LogDecodeOutcome(correlationID string, ok bool, uid []byte, readCtr uint32, kind string) {
	ev := log.Info()
	if !ok {
		ev = log.Warn()
	}
	ev = ev.
		Str("event", "decode_outcome").
		Str("correlation_id", correlationID).
		Bool("ok", ok)
	if ok {
		ev = ev.Str("uid_hex", hex.EncodeToString(uid)).Uint32("read_ctr", readCtr)
	} else {
		ev = ev.Str("error_kind", kind)
	}
	ev.Msg("decode finished")
}
