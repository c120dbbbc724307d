package core

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore keeps parameter snapshots in memory, keyed by snapshot ID.
// The feed channel lets the watch task hand snapshots over without
// touching the lock; model construction itself never writes here.
type MemoryStore struct {
	storeMap  map[string]*ParamsSnapshot
	latestID  string
	storeChan <-chan *ParamsSnapshot
	mu        sync.RWMutex
}

func (m *MemoryStore) Setup(sc SnapshotChan, c *Conf) error {
	m.storeMap = make(map[string]*ParamsSnapshot)
	m.storeChan = sc
	go func() {
		for {
			snapshot := <-m.storeChan
			if snapshot == nil { //when storeChan is closed
				return
			}
			zap.L().Debug(fmt.Sprintf("[MemoryStore] Received %s", snapshot.ID))
			if err := m.Update(snapshot); err != nil {
				zap.L().Error(fmt.Sprintf("failed to update a snapshot(%s). Reason:%s",
					snapshot.ID, err.Error()))
			}
		}
	}()
	return nil
}

func (m *MemoryStore) Insert(s *ParamsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeMap[s.ID] = s
	m.latestID = s.ID
	return nil
}

func (m *MemoryStore) Get(snapshotID string) (*ParamsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.storeMap[snapshotID]; ok {
		return val, nil
	}
	err := fmt.Errorf("not found %s", snapshotID)
	zap.L().Info("[MemoryStore]", zap.Field(zap.Error(err)))
	return &ParamsSnapshot{}, err
}

// Latest returns the most recently inserted snapshot.
func (m *MemoryStore) Latest() (*ParamsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latestID == "" {
		return &ParamsSnapshot{}, fmt.Errorf("no snapshot stored yet")
	}
	return m.storeMap[m.latestID], nil
}

func (m *MemoryStore) Update(s *ParamsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeMap[s.ID] = s
	m.latestID = s.ID
	return nil
}

func (m *MemoryStore) Delete(snapshotID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.storeMap[snapshotID]; ok {
		delete(m.storeMap, snapshotID)
		if m.latestID == snapshotID {
			m.latestID = ""
		}
		zap.L().Info(fmt.Sprintf("[MemoryStore] deleted %s from store", snapshotID))
		return nil
	}
	err := fmt.Errorf("failed to find %s", snapshotID)
	zap.L().Info("[MemoryStore]", zap.Field(zap.Error(err)))
	return err
}
