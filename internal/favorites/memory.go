package favorites

// MemorySlot is a Slot that lives only for the process. Used when no database is
// configured and in tests.
type MemorySlot struct {
	values map[string]string
}

// NewMemorySlot returns an empty in-memory slot
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (m *MemorySlot) GetValue(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySlot) SetValue(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemorySlot) DeleteValue(key string) error {
	delete(m.values, key)
	return nil
}
