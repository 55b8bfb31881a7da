// Package store хранит профиль текущего пользователя на стороне клиента.
//
// Store передаётся в панели настроек явно; подписчики получают сигнал
// после каждой записи и перечитывают состояние через Get.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Loader загружает профиль с сервера.
type Loader interface {
	UserInfo(ctx context.Context) (models.UserInfo, error)
}

// Store: потокобезопасный контейнер UserInfo.
type Store struct {
	mu     sync.RWMutex
	info   models.UserInfo
	loaded bool

	subsMu sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New создаёт пустой Store.
func New() *Store {
	return &Store{subs: make(map[int]chan struct{})}
}

// Get возвращает текущий профиль; false, пока профиль не загружен.
func (s *Store) Get() (models.UserInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info, s.loaded
}

// Set заменяет профиль целиком и оповещает подписчиков.
func (s *Store) Set(info models.UserInfo) {
	s.mu.Lock()
	s.info = info
	s.loaded = true
	s.mu.Unlock()

	s.notify()
}

// Load заполняет Store ответом GET /user/info.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	const op = "store.Load"
	info, err := loader.UserInfo(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.Set(info)
	return nil
}

// Subscribe возвращает канал, в который приходит сигнал после каждого Set.
// Сигналы не копятся: если подписчик не успел прочитать предыдущий,
// новый не ставится в очередь. Вызов unsubscribe закрывает канал.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
