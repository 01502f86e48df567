// Package jsonfile реализует самовосстанавливающееся файловое хранилище
// для одной JSON-коллекции записей.
//
// Отсутствующий, пустой или нечитаемый файл неотличим от повреждённого:
// любой из этих случаев приводит к пересозданию файла из стартовых данных.
// Таким образом один и тот же код обслуживает и холодный старт, и
// восстановление после сбоя. Повреждение никогда не доходит до клиента —
// оно чинится на месте, с предупреждением в логе и инкрементом метрики.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/product-catalog/internal/lib/sl"
)

var repairsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_store_repairs_total",
	Help: "Number of times a collection file was reseeded after loss or corruption.",
}, []string{"collection"})

// SeedFunc возвращает стартовое содержимое коллекции.
// Может выполнять небыструю работу, например вычисление bcrypt-хэша.
type SeedFunc[T any] func() ([]T, error)

// Store хранит коллекцию записей типа T в одном JSON-файле.
//
// Все операции чтения-изменения-записи сериализуются мьютексом,
// поэтому два конкурентных Create не могут получить одинаковый id
// в пределах одного процесса.
type Store[T any] struct {
	name string // Имя коллекции для логов и метрик
	path string // Путь к файлу коллекции
	seed SeedFunc[T]
	log  *slog.Logger
	mu   sync.Mutex
}

// New создаёт хранилище коллекции по указанному пути.
func New[T any](name, path string, seed SeedFunc[T], log *slog.Logger) *Store[T] {
	return &Store[T]{
		name: name,
		path: path,
		seed: seed,
		log:  log,
	}
}

// Ensure гарантирует, что файл коллекции существует и парсится.
// Идемпотентна: на валидном файле ничего не меняет.
// Ошибка означает, что записать даже стартовые данные не удалось —
// на старте процесса это фатально.
func (s *Store[T]) Ensure() error {
	const op = "jsonfile.Ensure"
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, err := s.loadLocked(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load читает коллекцию из файла. Если файл отсутствует, пуст или
// не парсится, перезаписывает его стартовыми данными и возвращает их
// вместе с repaired = true. Ошибка возможна только если пересоздать
// файл не удалось.
func (s *Store[T]) Load() (items []T, repaired bool, err error) {
	const op = "jsonfile.Load"
	s.mu.Lock()
	defer s.mu.Unlock()
	items, repaired, err = s.loadLocked()
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return items, repaired, nil
}

// Save сериализует всю коллекцию и атомарно заменяет файл
// (запись во временный файл и переименование), чтобы конкурентный
// читатель никогда не увидел частично записанный файл.
func (s *Store[T]) Save(items []T) error {
	const op = "jsonfile.Save"
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeLocked(items); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update выполняет цикл чтение-изменение-запись под мьютексом.
// Если fn возвращает ошибку, файл не перезаписывается, а ошибка
// отдаётся вызывающему без обёртки — так доменные ошибки вроде
// "запись не найдена" проходят наверх нетронутыми.
func (s *Store[T]) Update(fn func(items []T) ([]T, error)) ([]T, error) {
	const op = "jsonfile.Update"
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadLocked()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	updated, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := s.writeLocked(updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *Store[T]) loadLocked() ([]T, bool, error) {
	items, readErr := s.readFile()
	if readErr == nil {
		return items, false, nil
	}

	s.log.Warn("collection file is missing or unreadable, reseeding",
		slog.String("collection", s.name),
		slog.String("path", s.path),
		sl.Err(readErr),
	)
	repairsTotal.WithLabelValues(s.name).Inc()
	s.backupCorrupt()

	seeded, err := s.seed()
	if err != nil {
		return nil, false, err
	}
	if err := s.writeLocked(seeded); err != nil {
		return nil, false, err
	}
	return seeded, true, nil
}

func (s *Store[T]) readFile() ([]T, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("file is empty")
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("file is not a JSON array")
	}
	return items, nil
}

// backupCorrupt откладывает нечитаемый непустой файл в сторону,
// чтобы повреждённые данные не терялись молча при пересоздании.
func (s *Store[T]) backupCorrupt() {
	st, err := os.Stat(s.path)
	if err != nil || st.Size() == 0 {
		return
	}
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		s.log.Warn("failed to save corrupt collection file aside",
			slog.String("path", s.path), sl.Err(err))
		return
	}
	s.log.Warn("corrupt collection file saved aside",
		slog.String("collection", s.name), slog.String("backup", backup))
}

func (s *Store[T]) writeLocked(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
