//go:build tools

package rooms

import (
	_ "go.uber.org/mock/mockgen"
)
