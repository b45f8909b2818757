package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

// In-memory repository fakes. They mirror the Mongo-backed behavior the
// services rely on, including the conditional status updates.

type fakeUserRepo struct {
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id string, fields bson.M) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["bio"]; ok {
		u.Bio = v.(string)
	}
	if v, ok := fields["avatar"]; ok {
		u.Avatar = v.(string)
	}
	if v, ok := fields["is_private"]; ok {
		u.IsPrivate = v.(bool)
	}
	return u, nil
}

func (r *fakeUserRepo) List(_ context.Context, excludeID string) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, id := range r.sortedIDs() {
		if id != excludeID {
			out = append(out, r.users[id].Summary())
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SearchByName(_ context.Context, excludeID, query string) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	for _, id := range r.sortedIDs() {
		if id != excludeID && r.users[id].Name == query {
			out = append(out, r.users[id].Summary())
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Suggested(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	return r.List(ctx, excludeID)
}

func (r *fakeUserRepo) Follow(_ context.Context, userID, targetID string) error {
	r.users[userID].Following = append(r.users[userID].Following, targetID)
	r.users[targetID].Followers = append(r.users[targetID].Followers, userID)
	return nil
}

func (r *fakeUserRepo) Unfollow(_ context.Context, userID, targetID string) error {
	r.users[userID].Following = remove(r.users[userID].Following, targetID)
	r.users[targetID].Followers = remove(r.users[targetID].Followers, userID)
	return nil
}

func (r *fakeUserRepo) SetRecentChats(_ context.Context, id string, chats []string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RecentChats = chats
	return nil
}

func (r *fakeUserRepo) sortedIDs() []string {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type fakeNotifRepo struct {
	notifs  map[string]*models.Notification
	seq     int
	deleted []string
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{notifs: make(map[string]*models.Notification)}
}

func (r *fakeNotifRepo) Insert(_ context.Context, n *models.Notification) (*models.Notification, error) {
	r.seq++
	n.ID = fmt.Sprintf("n%d", r.seq)
	n.CreatedAt = time.Now().UTC()
	r.notifs[n.ID] = n
	return n, nil
}

func (r *fakeNotifRepo) ListForUser(_ context.Context, userID string, limit int64) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range r.notifs {
		if n.To == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotifRepo) UnseenCount(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, v := range r.notifs {
		if v.To == userID && !v.Seen {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotifRepo) MarkSeen(_ context.Context, id string) (bool, error) {
	n, ok := r.notifs[id]
	if !ok {
		return false, nil
	}
	n.Seen = true
	return true, nil
}

func (r *fakeNotifRepo) Delete(_ context.Context, id string) error {
	delete(r.notifs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeNotifRepo) DeleteSeenFor(_ context.Context, userID string) error {
	for id, n := range r.notifs {
		if n.To == userID && n.Seen {
			delete(r.notifs, id)
			r.deleted = append(r.deleted, id)
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages map[string]*models.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*models.Message)}
}

func (r *fakeMessageRepo) Insert(_ context.Context, m *models.Message) (*models.Message, error) {
	r.seq++
	m.ID = fmt.Sprintf("m%d", r.seq)
	m.Status = models.StatusSent
	m.CreatedAt = time.Now().UTC()
	r.messages[m.ID] = m
	return m, nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s not found", id)
	}
	return m, nil
}

func (r *fakeMessageRepo) HistoryBetween(_ context.Context, userA, userB string) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range r.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMessageRepo) HistoryForGroup(_ context.Context, groupID string) ([]models.Message, error) {
	out := []models.Message{}
	for _, m := range r.messages {
		if m.GroupID == groupID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMessageRepo) MarkDelivered(_ context.Context, id string) (bool, error) {
	m, ok := r.messages[id]
	if !ok || m.Status != models.StatusSent {
		return false, nil
	}
	m.Status = models.StatusDelivered
	return true, nil
}

func (r *fakeMessageRepo) MarkSeen(_ context.Context, id string) (bool, error) {
	m, ok := r.messages[id]
	if !ok || m.Status == models.StatusSeen {
		return false, nil
	}
	m.Status = models.StatusSeen
	return true, nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
	seq   int
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[string]*models.Post)}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	p.Likes = []string{}
	p.Comments = []models.Comment{}
	p.CreatedAt = time.Now().UTC()
	r.posts[p.ID] = p
	return p, nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePostRepo) ListByUser(_ context.Context, userID string) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID string) error {
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrPostNotFound
	}
	if !containsID(p.Likes, userID) {
		p.Likes = append(p.Likes, userID)
	}
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID string) error {
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrPostNotFound
	}
	p.Likes = remove(p.Likes, userID)
	return nil
}

func (r *fakePostRepo) AddComment(_ context.Context, postID string, c models.Comment) error {
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrPostNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

func (r *fakePostRepo) AddReply(_ context.Context, postID, commentID string, rep models.Reply) (bool, error) {
	p, ok := r.posts[postID]
	if !ok {
		return false, repository.ErrPostNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments[i].Replies = append(p.Comments[i].Replies, rep)
			return true, nil
		}
	}
	return false, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeGroupRepo struct {
	groups map[string]*models.Group
	seq    int
}

func newFakeGroupRepo(groups ...*models.Group) *fakeGroupRepo {
	r := &fakeGroupRepo{groups: make(map[string]*models.Group)}
	for _, g := range groups {
		r.groups[g.ID] = g
	}
	return r
}

func (r *fakeGroupRepo) Create(_ context.Context, g *models.Group) (*models.Group, error) {
	r.seq++
	g.ID = fmt.Sprintf("g%d", r.seq)
	g.CreatedAt = time.Now().UTC()
	r.groups[g.ID] = g
	return g, nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id string) (*models.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) ListForUser(_ context.Context, userID string) ([]models.Group, error) {
	out := []models.Group{}
	for _, g := range r.groups {
		if g.HasMember(userID) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) AddMember(_ context.Context, groupID string, m models.GroupMember) error {
	g, ok := r.groups[groupID]
	if !ok {
		return repository.ErrGroupNotFound
	}
	if !g.HasMember(m.UserID) {
		g.Members = append(g.Members, m)
	}
	return nil
}

func (r *fakeGroupRepo) RemoveMember(_ context.Context, groupID, userID string) error {
	g, ok := r.groups[groupID]
	if !ok {
		return repository.ErrGroupNotFound
	}
	kept := g.Members[:0]
	for _, m := range g.Members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	g.Members = kept
	return nil
}

// fakePusher records realtime pushes and simulates which users hold a
// live connection.
type fakePusher struct {
	online map[string]bool
	pushed []pushedEvent
}

type pushedEvent struct {
	userID  string
	event   string
	payload any
}

func newFakePusher(onlineUsers ...string) *fakePusher {
	p := &fakePusher{online: make(map[string]bool)}
	for _, u := range onlineUsers {
		p.online[u] = true
	}
	return p
}

func (p *fakePusher) PushToUser(userID, event string, payload any) bool {
	if !p.online[userID] {
		return false
	}
	p.pushed = append(p.pushed, pushedEvent{userID: userID, event: event, payload: payload})
	return true
}

// fakeBroadcaster records room fan-outs.
type fakeBroadcaster struct {
	broadcasts []broadcastCall
}

type broadcastCall struct {
	roomID  string
	event   string
	payload any
	exclude string
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID, event string, payload any, excludeConnID string) {
	b.broadcasts = append(b.broadcasts, broadcastCall{roomID: roomID, event: event, payload: payload, exclude: excludeConnID})
}
