package assetservice

import (
	"context"
	"strings"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
)

func TestAssetCreate(t *testing.T) {
	t.Parallel()

	asset := domain.Asset{
		ID:        uuid.NewString(),
		Ticker:    "USD",
		Symbol:    "$",
		Label:     "US Dollar",
		Precision: 2,
		Type:      domain.AssetTypeCurrency,
	}

	testCases := []struct {
		name       string
		input      domain.CreateAssetParams
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:  "OK",
			input: domain.CreateAssetParams{Ticker: "USD", Symbol: "$", Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAssetParams{
						Ticker: "USD", Symbol: "$", Label: "US Dollar", Precision: 2,
					})).
					Times(1).
					Return(asset, nil)
			},
		},
		{
			name:  "TickerIsUppercasedAndTrimmed",
			input: domain.CreateAssetParams{Ticker: " usd ", Symbol: "$", Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAssetParams{
						Ticker: "USD", Symbol: "$", Label: "US Dollar", Precision: 2,
					})).
					Times(1).
					Return(asset, nil)
			},
		},
		{
			name:  "BlankTicker",
			input: domain.CreateAssetParams{Ticker: "  ", Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTicker,
		},
		{
			name:  "TickerTooLong",
			input: domain.CreateAssetParams{Ticker: strings.Repeat("A", domain.TickerMaxLen+1), Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTicker,
		},
		{
			name:  "SymbolTooLong",
			input: domain.CreateAssetParams{Ticker: "USD", Symbol: strings.Repeat("$", domain.SymbolMaxLen+1), Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidSymbol,
		},
		{
			name:  "BlankLabel",
			input: domain.CreateAssetParams{Ticker: "USD", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidLabel,
		},
		{
			name:  "NegativePrecision",
			input: domain.CreateAssetParams{Ticker: "USD", Label: "US Dollar", Precision: -1},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidPrecision,
		},
		{
			name:  "PrecisionTooHigh",
			input: domain.CreateAssetParams{Ticker: "USD", Label: "US Dollar", Precision: domain.AssetMaxPrecision + 1},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidPrecision,
		},
		{
			name:  "DuplicateTicker",
			input: domain.CreateAssetParams{Ticker: "USD", Symbol: "$", Label: "US Dollar", Precision: 2},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Asset{}, domain.ErrTickerAlreadyExists)
			},
			wantError: domain.ErrTickerAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo)

			got, err := service.Create(context.Background(), tc.input)

			if tc.wantError != nil {
				require.EqualError(t, err, tc.wantError.Error())
				return
			}

			require.NoError(t, err)
			require.Equal(t, asset, got)
		})
	}
}
