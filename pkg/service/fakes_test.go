package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeCoins struct {
	coins map[string]models.Coin
}

func newFakeCoins(coins ...models.Coin) *fakeCoins {
	f := &fakeCoins{coins: make(map[string]models.Coin)}
	for _, c := range coins {
		f.coins[c.ID] = c
	}
	return f
}

func (f *fakeCoins) ListCoins(_ context.Context, visibleOnly bool) ([]models.Coin, error) {
	var out []models.Coin
	for _, c := range f.coins {
		if !visibleOnly || c.CoinVisible {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCoins) GetCoin(_ context.Context, id string) (models.Coin, error) {
	c, ok := f.coins[id]
	if !ok {
		return c, errors.Wrap(sql.ErrNoRows, "get coin")
	}
	return c, nil
}

func (f *fakeCoins) CreateCoin(_ context.Context, coin models.Coin) (models.Coin, error) {
	for _, c := range f.coins {
		if c.Name == coin.Name {
			return models.Coin{}, repository.ErrDuplicate
		}
	}
	f.coins[coin.ID] = coin
	return coin, nil
}

func (f *fakeCoins) UpdateCoin(_ context.Context, coin models.Coin) (models.Coin, error) {
	if _, ok := f.coins[coin.ID]; !ok {
		return coin, sql.ErrNoRows
	}
	f.coins[coin.ID] = coin
	return coin, nil
}

func (f *fakeCoins) UpdateRate(_ context.Context, id string, rate decimal.Decimal) (models.Coin, error) {
	c, ok := f.coins[id]
	if !ok {
		return c, sql.ErrNoRows
	}
	c.Rate = rate
	f.coins[id] = c
	return c, nil
}

func (f *fakeCoins) DeleteCoin(_ context.Context, id string) error {
	if _, ok := f.coins[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.coins, id)
	return nil
}

type balanceKey struct{ user, coin string }

// fakeBalances mirrors the atomic semantics of the postgres repository.
type fakeBalances struct {
	mu       sync.Mutex
	balances map[balanceKey]models.Balance
	ledger   []models.Transaction
	swaps    int
}

func newFakeBalances() *fakeBalances {
	return &fakeBalances{balances: make(map[balanceKey]models.Balance)}
}

func (f *fakeBalances) set(user, coin, available string) {
	f.balances[balanceKey{user, coin}] = models.Balance{
		ID: user + ":" + coin, UserID: user, CoinID: coin, Available: dec(available),
	}
}

func (f *fakeBalances) available(user, coin string) decimal.Decimal {
	return f.balances[balanceKey{user, coin}].Available
}

func (f *fakeBalances) ListBalances(_ context.Context, userID string) ([]models.BalanceView, error) {
	var out []models.BalanceView
	for k, b := range f.balances {
		if k.user == userID {
			out = append(out, models.BalanceView{Balance: b})
		}
	}
	return out, nil
}

func (f *fakeBalances) GetBalance(_ context.Context, userID, coinID string) (models.Balance, error) {
	b, ok := f.balances[balanceKey{userID, coinID}]
	if !ok {
		return b, errors.Wrap(sql.ErrNoRows, "get balance")
	}
	return b, nil
}

func (f *fakeBalances) ExecuteSwap(_ context.Context, swap models.SwapExecution) (models.SwapResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fromKey := balanceKey{swap.UserID, swap.From.ID}
	from, ok := f.balances[fromKey]
	if !ok {
		return models.SwapResult{}, sql.ErrNoRows
	}
	if from.Available.LessThan(swap.FromAmount) {
		return models.SwapResult{}, repository.ErrInsufficientBalance
	}
	from.Available = from.Available.Sub(swap.FromAmount)
	f.balances[fromKey] = from

	toKey := balanceKey{swap.UserID, swap.To.ID}
	to := f.balances[toKey]
	to.UserID, to.CoinID = swap.UserID, swap.To.ID
	to.Available = to.Available.Add(swap.ToAmount)
	f.balances[toKey] = to

	f.ledger = append(f.ledger,
		models.Transaction{UserID: swap.UserID, CoinID: &swap.From.ID, Type: models.TxSwapOut, Amount: swap.FromAmount, Status: models.TxCompleted},
		models.Transaction{UserID: swap.UserID, CoinID: &swap.To.ID, Type: models.TxSwapIn, Amount: swap.ToAmount, Status: models.TxCompleted},
	)
	f.swaps++
	return models.SwapResult{FromBalance: from, ToBalance: to}, nil
}

func (f *fakeBalances) AdjustBalance(_ context.Context, entry models.Transaction) (models.Balance, error) {
	key := balanceKey{entry.UserID, *entry.CoinID}
	b := f.balances[key]
	next := b.Available.Add(entry.Amount)
	if next.IsNegative() {
		return models.Balance{}, repository.ErrInsufficientBalance
	}
	b.UserID, b.CoinID, b.Available = entry.UserID, *entry.CoinID, next
	f.balances[key] = b
	f.ledger = append(f.ledger, entry)
	return b, nil
}

type fakeUsers struct {
	users    map[string]models.User
	verified []string
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return models.User{}, repository.ErrDuplicate
		}
	}
	user.KycStatus = models.KycNone
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, errors.Wrap(sql.ErrNoRows, "get user by email")
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return u, errors.Wrap(sql.ErrNoRows, "get user by id")
	}
	return u, nil
}

func (f *fakeUsers) SetEmailVerified(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.EmailVerified = true
	f.users[id] = u
	f.verified = append(f.verified, id)
	return nil
}

type sentSwap struct {
	email string
	swap  models.SwapExecution
}

type fakeNotifier struct {
	codes   map[string]string
	swaps   []sentSwap
	swapErr error
	otpErr  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{codes: make(map[string]string)}
}

func (n *fakeNotifier) SendOTP(_ context.Context, email, code string) error {
	if n.otpErr != nil {
		return n.otpErr
	}
	n.codes[email] = code
	return nil
}

func (n *fakeNotifier) NotifySwap(_ context.Context, email string, swap models.SwapExecution) error {
	n.swaps = append(n.swaps, sentSwap{email: email, swap: swap})
	return n.swapErr
}

type fakeOTPs struct {
	codes map[string]string
	fails map[string]int
}

func newFakeOTPs() *fakeOTPs {
	return &fakeOTPs{codes: make(map[string]string), fails: make(map[string]int)}
}

func (o *fakeOTPs) Save(_ context.Context, email, code string) error {
	o.codes[email] = code
	delete(o.fails, email)
	return nil
}

func (o *fakeOTPs) Fail(_ context.Context, email string) (int, error) {
	if _, ok := o.codes[email]; !ok {
		return 0, nil
	}
	o.fails[email]++
	return o.fails[email], nil
}

func (o *fakeOTPs) Get(_ context.Context, email string) (string, bool, error) {
	code, ok := o.codes[email]
	return code, ok, nil
}

func (o *fakeOTPs) Delete(_ context.Context, email string) error {
	delete(o.codes, email)
	delete(o.fails, email)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID, _, _ string) (string, time.Time, error) {
	return "token-" + userID, time.Now().Add(time.Hour), nil
}

type fakeTransactions struct {
	txs     map[string]models.Transaction
	settled []string
	reserve error
}

func newFakeTransactions(txs ...models.Transaction) *fakeTransactions {
	f := &fakeTransactions{txs: make(map[string]models.Transaction)}
	for _, t := range txs {
		f.txs[t.ID] = t
	}
	return f
}

func (f *fakeTransactions) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactions) ListAllTransactions(_ context.Context, status string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.txs {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactions) GetTransaction(_ context.Context, id string) (models.Transaction, error) {
	t, ok := f.txs[id]
	if !ok {
		return t, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeTransactions) CreateDeposit(_ context.Context, entry models.Transaction) (models.Transaction, error) {
	entry.ID = "tx-" + entry.Type
	f.txs[entry.ID] = entry
	return entry, nil
}

func (f *fakeTransactions) CreateWithdrawal(_ context.Context, entry models.Transaction) (models.Transaction, error) {
	if f.reserve != nil {
		return models.Transaction{}, f.reserve
	}
	entry.ID = "tx-" + entry.Type
	f.txs[entry.ID] = entry
	return entry, nil
}

func (f *fakeTransactions) Settle(_ context.Context, id, status string) (models.Transaction, error) {
	t, ok := f.txs[id]
	if !ok {
		return t, sql.ErrNoRows
	}
	if t.Status != models.TxPending {
		return t, repository.ErrNotPending
	}
	t.Status = status
	f.txs[id] = t
	f.settled = append(f.settled, id)
	return t, nil
}

type fakeVerifier struct {
	confirmed bool
	calls     []string
}

func (v *fakeVerifier) TransactionConfirmed(_ context.Context, txID string) (bool, error) {
	v.calls = append(v.calls, txID)
	return v.confirmed, nil
}

type fakeRates map[string]decimal.Decimal

func (r fakeRates) USDRate(_ context.Context, symbol string) (decimal.Decimal, error) {
	rate, ok := r[symbol]
	if !ok {
		return decimal.Zero, errors.New("no rate")
	}
	return rate, nil
}
