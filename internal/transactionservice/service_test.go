package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/configpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
)

var testConfig = configpkg.Config{
	PageSizeMin: 10,
	PageSizeMax: 100,
}

type fixture struct {
	viewer   domain.User
	other    domain.User
	owned    domain.Account
	foreign  domain.Account
	unowned  domain.Account
	usd      domain.Asset
	refs     domain.References
	location *time.Location
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		viewer:  domain.User{ID: uuid.NewString(), Email: "viewer@example.com", HashedPassword: "secret"},
		other:   domain.User{ID: uuid.NewString(), Email: "other@example.com", HashedPassword: "secret"},
		owned:   domain.Account{ID: uuid.NewString(), Name: "Checking"},
		foreign: domain.Account{ID: uuid.NewString(), Name: "Partner"},
		unowned: domain.Account{ID: uuid.NewString(), Name: "Grocery store"},
		usd:     domain.Asset{ID: uuid.NewString(), Ticker: "USD", Precision: 2},
	}

	f.refs = domain.References{
		Users:    []domain.User{f.viewer, f.other},
		Assets:   []domain.Asset{f.usd},
		Accounts: []domain.Account{f.owned, f.foreign, f.unowned},
		Ownerships: []domain.AccountOwnership{
			{ID: 1, UserID: f.viewer.ID, AccountID: f.owned.ID},
			{ID: 2, UserID: f.other.ID, AccountID: f.foreign.ID},
		},
	}

	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	f.location = loc

	return f
}

func (f fixture) transaction(creditAccountID, debitAccountID string) domain.Transaction {
	return domain.Transaction{
		ID:              uuid.NewString(),
		Note:            "groceries",
		CreditAccountID: creditAccountID,
		DebitAccountID:  debitAccountID,
		CreditAssetID:   f.usd.ID,
		DebitAssetID:    f.usd.ID,
		CreditStamp:     time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
		DebitStamp:      time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
		CreditAmount:    10000,
		DebitAmount:     10000,
	}
}

func TestResolve(t *testing.T) {
	f := newFixture(t)

	t.Run("ForeignLegShowsOwnersViewerLegShowsAccount", func(t *testing.T) {
		txn := f.transaction(f.foreign.ID, f.owned.ID)

		got, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.True(t, ok)

		require.False(t, got.Credit.IsAccount())
		require.Len(t, got.Credit.Owners, 1)
		require.Equal(t, f.other.ID, got.Credit.Owners[0].ID)
		require.Empty(t, got.Credit.Owners[0].HashedPassword)

		require.True(t, got.Debit.IsAccount())
		require.Equal(t, f.owned.ID, got.Debit.Account.ID)
	})

	t.Run("UnownedLegShowsAccount", func(t *testing.T) {
		txn := f.transaction(f.owned.ID, f.unowned.ID)

		got, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.True(t, ok)

		require.True(t, got.Debit.IsAccount())
		require.Equal(t, f.unowned.ID, got.Debit.Account.ID)
	})

	t.Run("AmountsCarryAssetPrecision", func(t *testing.T) {
		txn := f.transaction(f.owned.ID, f.unowned.ID)

		got, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.True(t, ok)

		require.True(t, got.CreditAmount.Equal(decimal.RequireFromString("100.00")))
		require.True(t, got.DebitAmount.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("StampsRenderInViewerLocation", func(t *testing.T) {
		txn := f.transaction(f.owned.ID, f.unowned.ID)

		got, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.True(t, ok)

		require.Equal(t, "2023-03-01 13:00", got.CreditStamp.Format(domain.StampLayout))
	})

	t.Run("MissingAssetSkips", func(t *testing.T) {
		txn := f.transaction(f.owned.ID, f.unowned.ID)
		txn.CreditAssetID = uuid.NewString()

		_, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.False(t, ok)
	})

	t.Run("MissingAccountSkips", func(t *testing.T) {
		txn := f.transaction(uuid.NewString(), f.owned.ID)

		_, ok := Resolve(txn, f.viewer.ID, f.location, f.refs)
		require.False(t, ok)
	})

	t.Run("DanglingOwnerLeavesEmptyList", func(t *testing.T) {
		refs := f.refs
		refs.Users = []domain.User{f.viewer}

		txn := f.transaction(f.foreign.ID, f.owned.ID)

		got, ok := Resolve(txn, f.viewer.ID, f.location, refs)
		require.True(t, ok)
		require.False(t, got.Credit.IsAccount())
		require.Empty(t, got.Credit.Owners)
	})
}

func TestClampPageSize(t *testing.T) {
	service := New(nil, testConfig)

	testCases := []struct {
		name string
		size int32
		want int32
	}{
		{name: "BelowMin", size: 1, want: 10},
		{name: "Zero", size: 0, want: 10},
		{name: "Negative", size: -5, want: 10},
		{name: "InRange", size: 50, want: 50},
		{name: "AboveMax", size: 10000, want: 100},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, service.ClampPageSize(tc.size))
		})
	}
}

func TestList(t *testing.T) {
	f := newFixture(t)

	viewer := f.viewer
	viewer.Timezone = "Europe/Berlin"

	unsettled := f.transaction(f.foreign.ID, f.owned.ID)
	settled := f.transaction(f.owned.ID, f.unowned.ID)
	settled.CreditSettled = true
	settled.DebitSettled = true
	broken := f.transaction(uuid.NewString(), f.owned.ID)

	testCases := []struct {
		name          string
		viewer        domain.User
		page          int32
		size          int32
		buildStubs    func(repo *MockRepo)
		checkResponse func(page Page, err error)
	}{
		{
			name:   "OK",
			viewer: viewer,
			page:   2,
			size:   50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListUnsettled(gomock.Any()).
					Times(1).
					Return([]domain.Transaction{unsettled}, nil)
				repo.EXPECT().ListSettled(gomock.Any(), int32(50), int32(50)).
					Times(1).
					Return([]domain.Transaction{settled}, nil)
				repo.EXPECT().References(gomock.Any(), []domain.Transaction{unsettled, settled}).
					Times(1).
					Return(f.refs, nil)
			},
			checkResponse: func(page Page, err error) {
				require.NoError(t, err)
				require.Len(t, page.Unsettled, 1)
				require.Len(t, page.Settled, 1)
				require.Equal(t, int32(2), page.Number)
				require.Equal(t, int32(50), page.Size)
			},
		},
		{
			name:   "ClampsOversizedPageAndNormalizesPageNumber",
			viewer: viewer,
			page:   0,
			size:   10000,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListUnsettled(gomock.Any()).
					Times(1).
					Return([]domain.Transaction{}, nil)
				repo.EXPECT().ListSettled(gomock.Any(), int32(100), int32(0)).
					Times(1).
					Return([]domain.Transaction{}, nil)
				repo.EXPECT().References(gomock.Any(), []domain.Transaction{}).
					Times(1).
					Return(domain.References{}, nil)
			},
			checkResponse: func(page Page, err error) {
				require.NoError(t, err)
				require.Equal(t, int32(1), page.Number)
				require.Equal(t, int32(100), page.Size)
			},
		},
		{
			name:   "UnresolvableRowIsDropped",
			viewer: viewer,
			page:   1,
			size:   50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListUnsettled(gomock.Any()).
					Times(1).
					Return([]domain.Transaction{unsettled, broken}, nil)
				repo.EXPECT().ListSettled(gomock.Any(), int32(50), int32(0)).
					Times(1).
					Return([]domain.Transaction{}, nil)
				repo.EXPECT().References(gomock.Any(), []domain.Transaction{unsettled, broken}).
					Times(1).
					Return(f.refs, nil)
			},
			checkResponse: func(page Page, err error) {
				require.NoError(t, err)
				require.Len(t, page.Unsettled, 1)
			},
		},
		{
			name:   "InvalidStoredTimezone",
			viewer: domain.User{ID: viewer.ID, Timezone: "Neverland/Nowhere"},
			page:   1,
			size:   50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListUnsettled(gomock.Any()).Times(0)
			},
			checkResponse: func(page Page, err error) {
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
				require.Empty(t, page)
			},
		},
		{
			name:   "RepoError",
			viewer: viewer,
			page:   1,
			size:   50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().ListUnsettled(gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			checkResponse: func(page Page, err error) {
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, testConfig)

			page, err := service.List(context.Background(), tc.viewer, tc.page, tc.size)
			tc.checkResponse(page, err)
		})
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	arg := domain.CreateTransactionParams{
		CSRF:          uuid.NewString(),
		Note:          "rent",
		CreditAccount: f.owned.ID,
		DebitAccount:  f.foreign.ID,
		Asset:         f.usd.ID,
		Amount:        "100.00",
		Timestamp:     "2023-03-01 12:00",
	}

	want := f.transaction(f.owned.ID, f.foreign.ID)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().CreateTx(gomock.Any(), gomock.Eq(f.viewer), gomock.Eq(arg)).
		Times(1).
		Return(want, nil)

	service := New(repo, testConfig)

	got, err := service.Create(context.Background(), f.viewer, arg)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
