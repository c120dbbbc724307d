//go:build unit
// +build unit

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/transim-team/transim-engine/core"
)

func TestDailyLogger(t *testing.T) {
	dir, err := os.MkdirTemp("", "snapshotlog")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	dl := newDailyLogger(dir)
	defer dl.Close()
	n, err := dl.Write([]byte("hello\n"))
	assert.Nil(t, err)
	assert.Equal(t, n, 6)

	fileName := fmt.Sprintf("snapshot-%s.log", time.Now().Format("2006-01-02"))
	blob, err := os.ReadFile(filepath.Join(dir, fileName))
	assert.Nil(t, err)
	assert.Equal(t, string(blob), "hello\n")
}

func TestSnapshotLogTaskSetParams(t *testing.T) {
	m := &SnapshotLogTaskImpl{}
	assert.Nil(t, m.SetParams(nil))
	assert.Equal(t, m.FileDir, "")

	err := m.SetParams(map[string]interface{}{"file_dir": "./shares/snapshots"})
	assert.Nil(t, err)
	assert.Equal(t, m.FileDir, "./shares/snapshots")

	err = m.SetParams("bogus")
	assert.EqualError(t, err, "failed to set params for snapshot log task/params: bogus")
}

func TestSnapshotLogTask(t *testing.T) {
	dir, err := os.MkdirTemp("", "snapshotlog")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	sc := core.SCWithStoreContainer()
	snapshot := core.NewParamsSnapshot("mock")
	sc.SnapshotChan <- snapshot
	// the consumer goroutine stores asynchronously
	stored := false
	for i := 0; i < 100; i++ {
		if _, err := sc.LatestSnapshot(); err == nil {
			stored = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, stored)

	m := &SnapshotLogTaskImpl{FileDir: dir}
	assert.Nil(t, m.Setup())
	m.Task()
	m.Cleanup()

	fileName := fmt.Sprintf("snapshot-%s.log", time.Now().Format("2006-01-02"))
	blob, err := os.ReadFile(filepath.Join(dir, fileName))
	assert.Nil(t, err)
	assert.Contains(t, string(blob), snapshot.ID)
	assert.Contains(t, string(blob), `"status":"valid"`)
}
