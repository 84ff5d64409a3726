package inmem

import (
	"testing"

	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage"
	"github.com/sandeshkamboj/AppManager/subsystem/profile/storage/test"
)

func TestInMem(t *testing.T) {
	test.TestProfileStorage(t, func() (storage.Storage, error) { return New(), nil })
}
