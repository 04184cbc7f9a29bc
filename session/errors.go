// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	ErrNoDecoder = errors.New("no decoder registered for file")
	ErrNoSource  = errors.New("track has no src")
)
