package roster

import (
	"context"
	"sync"
)

// 購読コールバック。スナップショットか、ストア障害の通知（snap=nil, err≠nil）の
// どちらか一方が入る。
type SubscribeFunc func(snap Snapshot, err error)

type notice struct {
	snap Snapshot
	err  error
}

// 購読者ごとの順序付きキュー。push は決してブロックしないので、
// 遅い購読者がいてもブロードキャスト側は待たされない。
type subscriber struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []notice
	closed bool
}

func newSubscriber() *subscriber {
	s := &subscriber{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *subscriber) push(n notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, n)
	s.cond.Signal()
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Signal()
}

// 転送ループ。close 後はキューに残っていてもコールバックを呼ばない
// （unsubscribe 以降に通知しない契約）。
func (s *subscriber) run(fn SubscribeFunc) {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		n := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn(n.snap, n.err)
	}
}

// Mirror はリモートコレクションのローカル鏡像を1つだけ持ち、
// 書き込み確定後に再読込して全購読者へ配る。鏡像の書き手はここだけ。
// 楽観的なローカルエコーはしない（確定前の状態を見せない）。
type Mirror struct {
	remote RemoteCollection

	// 書き込み確定後の再読込〜配信は refreshMu で直列化する。
	// 並行に走らせると、先に始まった古い読みが新しい読みの後に返って
	// きた場合に鏡像が後退し、購読者へ逆順のスナップショットが届く。
	refreshMu sync.Mutex

	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	latest Snapshot
	closed bool
}

func NewMirror(remote RemoteCollection) *Mirror {
	return &Mirror{
		remote: remote,
		subs:   make(map[uint64]*subscriber),
	}
}

// Start: 初期スナップショットの取り込み
func (m *Mirror) Start(ctx context.Context) error {
	snap, err := m.remote.List(ctx)
	if err != nil {
		return wrapUnavailable("initial read", err)
	}
	m.mu.Lock()
	m.latest = snap
	m.mu.Unlock()
	return nil
}

// Subscribe: 現在のスナップショットを即時に1回配ってから、以後の変化を
// 到着順に配る。返り値を呼ぶと購読解除（冪等）。
func (m *Mirror) Subscribe(fn SubscribeFunc) (cancel func()) {
	sub := newSubscriber()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return func() {}
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = sub
	sub.push(notice{snap: m.latest.Clone()})
	m.mu.Unlock()

	go sub.run(fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			sub.close()
		})
	}
}

// ReadOnce: 購読なしの一回読み（一意性チェックや統計エクスポート用）
func (m *Mirror) ReadOnce(ctx context.Context) (Snapshot, error) {
	snap, err := m.remote.List(ctx)
	if err != nil {
		return nil, wrapUnavailable("read", err)
	}
	return snap, nil
}

// Latest: 鏡像の現在値（コピー）
func (m *Mirror) Latest() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest.Clone()
}

func (m *Mirror) Create(ctx context.Context, e Empleado) (Empleado, error) {
	created, err := m.remote.Insert(ctx, e)
	if err != nil {
		return Empleado{}, wrapUnavailable("create", err)
	}
	m.refresh(ctx)
	return created, nil
}

func (m *Mirror) Update(ctx context.Context, docID string, p Patch) error {
	if err := m.remote.Patch(ctx, docID, p); err != nil {
		return wrapUnavailable("update", err)
	}
	m.refresh(ctx)
	return nil
}

// Remove: 冪等削除
func (m *Mirror) Remove(ctx context.Context, docID string) error {
	if err := m.remote.Delete(ctx, docID); err != nil {
		return wrapUnavailable("remove", err)
	}
	m.refresh(ctx)
	return nil
}

// Close: 全購読を破棄する。以後の Subscribe は何も配らないハンドルを返す。
func (m *Mirror) Close() {
	m.mu.Lock()
	subs := m.subs
	m.subs = make(map[uint64]*subscriber)
	m.closed = true
	m.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

// 書き込み確定後の再読込と配信。再読込に失敗したら鏡像は据え置いて
// 購読者へエラー通知だけ流す。次の再読込は前の配信が終わるまで始めない。
func (m *Mirror) refresh(ctx context.Context) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	snap, err := m.remote.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if err != nil {
		for _, sub := range m.subs {
			sub.push(notice{err: wrapUnavailable("refresh", err)})
		}
		return
	}
	m.latest = snap
	for _, sub := range m.subs {
		sub.push(notice{snap: snap.Clone()})
	}
}
