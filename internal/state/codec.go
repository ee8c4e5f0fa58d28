package state

import (
	"encoding/json"
)

// Encode сериализует snapshot в JSON.
// Возвращаемые байты — полное и без потерь представление всех коллекций,
// часов и статуса синхронизации: Decode(Encode(s)) == s для любого
// валидного snapshot. Для валидного in-memory snapshot ошибка невозможна.
func Encode(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, SerializationError(err.Error())
	}
	return data, nil
}

// Decode восстанавливает snapshot из JSON.
// Некорректные байты дают ошибку Serialization; она фатальна для этого
// вызова, но не затрагивает никакую in-memory реплику.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, SerializationError(err.Error())
	}
	// Отсутствующие в JSON коллекции становятся пустыми map,
	// чтобы результат был готов к merge и мутациям
	s.ensureMaps()
	return &s, nil
}
