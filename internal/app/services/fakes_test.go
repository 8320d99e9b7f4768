package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/repositories"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeAccounts is an in-memory account store covering the slices the services
// consume: points adjustment, account lookup, and moderation.
type fakeAccounts struct {
	users     map[int64]*models.User
	companies map[int64]*models.Company
	follows   map[int64]map[int64]bool // follower -> followee
	nextID    int64
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		users:     make(map[int64]*models.User),
		companies: make(map[int64]*models.Company),
		follows:   make(map[int64]map[int64]bool),
	}
}

func (f *fakeAccounts) addUser(user *models.User) *models.User {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	} else if user.ID > f.nextID {
		f.nextID = user.ID
	}
	if user.Rank == "" {
		user.Rank = models.RankFor(user.PCPoints)
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeAccounts) CreateUser(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return apperrors.ErrDuplicateIdentity
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

func (f *fakeAccounts) CreateCompany(_ context.Context, company *models.Company) error {
	for _, existing := range f.companies {
		if existing.Email == company.Email {
			return apperrors.ErrDuplicateIdentity
		}
	}
	f.nextID++
	company.ID = f.nextID
	company.CreatedAt = time.Now()
	f.companies[company.ID] = company
	return nil
}

func (f *fakeAccounts) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeAccounts) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAccounts) GetCompanyByID(_ context.Context, id int64) (*models.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, apperrors.ErrCompanyNotFound
	}
	copied := *company
	return &copied, nil
}

func (f *fakeAccounts) GetCompanyByEmail(_ context.Context, email string) (*models.Company, error) {
	for _, company := range f.companies {
		if company.Email == email {
			copied := *company
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (f *fakeAccounts) TouchLastActive(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.LastActive = time.Now()
	return nil
}

// AdjustPoints mirrors the repository behavior: balances floor at zero and
// the rank is recomputed from the resulting PC total.
func (f *fakeAccounts) AdjustPoints(_ context.Context, userID int64, pcDelta, pconDelta int) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user.PCPoints += pcDelta
	if user.PCPoints < 0 {
		user.PCPoints = 0
	}
	user.PConPoints += pconDelta
	if user.PConPoints < 0 {
		user.PConPoints = 0
	}
	user.Rank = models.RankFor(user.PCPoints)
	copied := *user
	return &copied, nil
}

func (f *fakeAccounts) AddAchievement(_ context.Context, userID int64, achievement string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for _, have := range user.Achievements {
		if have == achievement {
			return nil
		}
	}
	user.Achievements = append(user.Achievements, achievement)
	return nil
}

func (f *fakeAccounts) BanUser(_ context.Context, userID int64, reason string, expires *time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsBanned = true
	user.BanReason = &reason
	user.BanExpires = expires
	return nil
}

func (f *fakeAccounts) UnbanUser(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsBanned = false
	user.BanReason = nil
	user.BanExpires = nil
	return nil
}

func (f *fakeAccounts) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAccounts) UpdateUserProfile(_ context.Context, user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	*stored = *user
	return nil
}

// ListUsers orders by PC points descending, matching the leaderboard query.
func (f *fakeAccounts) ListUsers(_ context.Context, search string, offset uint64, limit int) ([]models.User, int64, error) {
	var out []models.User
	for _, user := range f.users {
		if search != "" && !strings.Contains(user.Username, search) {
			continue
		}
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PCPoints != out[j].PCPoints {
			return out[i].PCPoints > out[j].PCPoints
		}
		return out[i].ID < out[j].ID
	})
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.User{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeAccounts) Follow(_ context.Context, followerID, followeeID int64) error {
	if f.follows[followerID] == nil {
		f.follows[followerID] = make(map[int64]bool)
	}
	f.follows[followerID][followeeID] = true
	return nil
}

func (f *fakeAccounts) Unfollow(_ context.Context, followerID, followeeID int64) error {
	delete(f.follows[followerID], followeeID)
	return nil
}

func (f *fakeAccounts) IsFollowing(_ context.Context, followerID, followeeID int64) (bool, error) {
	return f.follows[followerID][followeeID], nil
}

func (f *fakeAccounts) FollowerIDs(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for followerID, followees := range f.follows {
		if followees[userID] {
			out = append(out, followerID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeAccounts) FolloweeIDs(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for followeeID := range f.follows[userID] {
		out = append(out, followeeID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// fakeVoteStore keeps votes and target counters in memory and routes author
// point deltas through a fakeAccounts, matching the transactional repository.
type fakeVoteStore struct {
	accounts *fakeAccounts
	votes    map[string]*models.Vote
	targets  map[string]*repositories.TargetState
	nextID   int64
}

func newFakeVoteStore(accounts *fakeAccounts) *fakeVoteStore {
	return &fakeVoteStore{
		accounts: accounts,
		votes:    make(map[string]*models.Vote),
		targets:  make(map[string]*repositories.TargetState),
	}
}

func voteKey(userID, targetID int64, targetType models.TargetType) string {
	return fmt.Sprintf("%d/%s/%d", userID, targetType, targetID)
}

func targetKey(targetID int64, targetType models.TargetType) string {
	return fmt.Sprintf("%s/%d", targetType, targetID)
}

func (f *fakeVoteStore) addTarget(targetID int64, targetType models.TargetType, authorID int64) {
	f.targets[targetKey(targetID, targetType)] = &repositories.TargetState{AuthorID: authorID}
}

func (f *fakeVoteStore) Get(_ context.Context, userID, targetID int64, targetType models.TargetType) (*models.Vote, error) {
	vote, ok := f.votes[voteKey(userID, targetID, targetType)]
	if !ok {
		return nil, nil
	}
	copied := *vote
	return &copied, nil
}

func (f *fakeVoteStore) TargetAuthor(_ context.Context, targetID int64, targetType models.TargetType) (*repositories.TargetState, error) {
	state, ok := f.targets[targetKey(targetID, targetType)]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *state
	return &copied, nil
}

func (f *fakeVoteStore) apply(ctx context.Context, state *repositories.TargetState, authorID int64, authorPCDelta int) error {
	if authorPCDelta == 0 {
		return nil
	}
	_, err := f.accounts.AdjustPoints(ctx, authorID, authorPCDelta, 0)
	return err
}

func bump(state *repositories.TargetState, direction models.VoteDirection, by int) {
	if direction == models.VoteUp {
		state.Upvotes += by
		if state.Upvotes < 0 {
			state.Upvotes = 0
		}
		return
	}
	state.Downvotes += by
	if state.Downvotes < 0 {
		state.Downvotes = 0
	}
}

func (f *fakeVoteStore) Cast(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*repositories.TargetState, error) {
	state, ok := f.targets[targetKey(vote.TargetID, vote.TargetType)]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	f.nextID++
	vote.ID = f.nextID
	vote.CreatedAt = time.Now()
	stored := *vote
	f.votes[voteKey(vote.UserID, vote.TargetID, vote.TargetType)] = &stored
	bump(state, vote.Direction, 1)
	if err := f.apply(ctx, state, authorID, authorPCDelta); err != nil {
		return nil, err
	}
	copied := *state
	return &copied, nil
}

func (f *fakeVoteStore) Retract(ctx context.Context, vote *models.Vote, authorID int64, authorPCDelta int) (*repositories.TargetState, error) {
	state, ok := f.targets[targetKey(vote.TargetID, vote.TargetType)]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	delete(f.votes, voteKey(vote.UserID, vote.TargetID, vote.TargetType))
	bump(state, vote.Direction, -1)
	if err := f.apply(ctx, state, authorID, authorPCDelta); err != nil {
		return nil, err
	}
	copied := *state
	return &copied, nil
}

func (f *fakeVoteStore) Switch(ctx context.Context, vote *models.Vote, newDirection models.VoteDirection, authorID int64, authorPCDelta int) (*repositories.TargetState, error) {
	state, ok := f.targets[targetKey(vote.TargetID, vote.TargetType)]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	bump(state, vote.Direction, -1)
	bump(state, newDirection, 1)
	stored := f.votes[voteKey(vote.UserID, vote.TargetID, vote.TargetType)]
	if stored != nil {
		stored.Direction = newDirection
	}
	if err := f.apply(ctx, state, authorID, authorPCDelta); err != nil {
		return nil, err
	}
	copied := *state
	return &copied, nil
}

// fakeTokenStore keeps refresh tokens in memory.
type fakeTokenStore struct {
	tokens map[string]*tokenRecord
}

type tokenRecord struct {
	accountID int64
	kind      models.AccountKind
	expiry    time.Time
	revoked   bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, accountID int64, kind models.AccountKind, expiryDate time.Time) error {
	f.tokens[token] = &tokenRecord{accountID: accountID, kind: kind, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, models.AccountKind, error) {
	record, ok := f.tokens[token]
	if !ok {
		return 0, "", apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, "", apperrors.ErrTokenRevoked
	}
	if record.expiry.Before(time.Now()) {
		return 0, "", apperrors.ErrTokenExpired
	}
	return record.accountID, record.kind, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	record, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllAccountTokens(_ context.Context, accountID int64, kind models.AccountKind) error {
	for _, record := range f.tokens {
		if record.accountID == accountID && record.kind == kind {
			record.revoked = true
		}
	}
	return nil
}
