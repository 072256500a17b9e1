package rawscan

import (
	"fmt"
	"os"
	"strconv"
)

// ForceBufSizeEnvVar names the environment variable consulted by Open when
// AllowForceBufSizeEnv is true.
const ForceBufSizeEnvVar = "RAWSCAN_FORCE_BUFSZ"

const maxForcedBufSize = 1 << 31

// AllowForceBufSizeEnv is a process-wide opt-in. When true, Open honors
// RAWSCAN_FORCE_BUFSZ in place of its bufsz argument, for exercising
// boundary cases with very small buffers. Do not enable it in production.
var AllowForceBufSizeEnv = false

func resolveBufSize(requested int) (int, error) {
	if !AllowForceBufSizeEnv {
		return requested, nil
	}
	raw, ok := os.LookupEnv(ForceBufSizeEnvVar)
	if !ok {
		return requested, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rawscan: %s=%q: %w", ForceBufSizeEnvVar, raw, err)
	}
	if n <= 0 || n > maxForcedBufSize {
		return 0, fmt.Errorf("rawscan: %s=%d out of range [1,%d]", ForceBufSizeEnvVar, n, maxForcedBufSize)
	}
	return n, nil
}
