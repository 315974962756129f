package networth

import (
	"slices"

	"github.com/etnz/networth/date"
)

// ProductType is a category of holding.
type ProductType string

const (
	Account       ProductType = "ACCOUNT"
	Card          ProductType = "CARD"
	Loan          ProductType = "LOAN"
	StockETF      ProductType = "STOCK_ETF"
	Fund          ProductType = "FUND"
	FundPortfolio ProductType = "FUND_PORTFOLIO"
	Deposit       ProductType = "DEPOSIT"
	Factoring     ProductType = "FACTORING"
	RealEstateCF  ProductType = "REAL_ESTATE_CF"
	Crowdlending  ProductType = "CROWDLENDING"
	Crypto        ProductType = "CRYPTO"
	Commodity     ProductType = "COMMODITY"
	Bond          ProductType = "BOND"
	Derivative    ProductType = "DERIVATIVE"
)

// Valued is implemented by every product entry: it tells which monetary field
// stands for the entry's value.
type Valued interface {
	EntryID() string
	Valuation() MonetaryEntry
}

// Entries is the list shape shared by list products.
type Entries[T any] struct {
	Entries []T `json:"entries"`
}

// Products holds the holdings of one entity, one field per product type.
type Products struct {
	Accounts       Entries[AccountEntry]       `json:"ACCOUNT,omitzero"`
	Cards          Entries[CardEntry]          `json:"CARD,omitzero"`
	Loans          Entries[LoanEntry]          `json:"LOAN,omitzero"`
	Stocks         Entries[StockEntry]         `json:"STOCK_ETF,omitzero"`
	Funds          Entries[FundEntry]          `json:"FUND,omitzero"`
	FundPortfolios Entries[FundPortfolioEntry] `json:"FUND_PORTFOLIO,omitzero"`
	Deposits       Entries[DepositEntry]       `json:"DEPOSIT,omitzero"`
	Factoring      Entries[FactoringEntry]     `json:"FACTORING,omitzero"`
	RealEstateCF   Entries[RealEstateCFEntry]  `json:"REAL_ESTATE_CF,omitzero"`
	Crowdlending   *CrowdlendingTotal          `json:"CROWDLENDING,omitempty"`
	Crypto         Entries[CryptoWallet]       `json:"CRYPTO,omitzero"`
	Commodities    Entries[CommodityEntry]     `json:"COMMODITY,omitzero"`
	Bonds          Entries[BondEntry]          `json:"BOND,omitzero"`
	Derivatives    Entries[DerivativeEntry]    `json:"DERIVATIVE,omitzero"`
}

type AccountEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Type     string  `json:"type,omitempty"`
	IBAN     string  `json:"iban,omitempty"`
	Total    Decimal `json:"total"`
	Currency string  `json:"currency"`
}

func (e AccountEntry) EntryID() string          { return e.ID }
func (e AccountEntry) Valuation() MonetaryEntry { return Money(e.Total, e.Currency) }

type CardEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Type     string  `json:"type,omitempty"`
	Limit    Decimal `json:"limit"`
	Used     Decimal `json:"used"`
	Active   bool    `json:"active"`
	Currency string  `json:"currency"`
}

func (e CardEntry) EntryID() string          { return e.ID }
func (e CardEntry) Valuation() MonetaryEntry { return Money(e.Used, e.Currency) }

type LoanEntry struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name,omitempty"`
	Type                 string     `json:"type,omitempty"`
	LoanAmount           Decimal    `json:"loan_amount"`
	PrincipalOutstanding Decimal    `json:"principal_outstanding"`
	CurrentInstallment   Decimal    `json:"current_installment"`
	InterestRate         Decimal    `json:"interest_rate"`
	Maturity             *date.Date `json:"maturity,omitempty"`
	Currency             string     `json:"currency"`
}

func (e LoanEntry) EntryID() string          { return e.ID }
func (e LoanEntry) Valuation() MonetaryEntry { return Money(e.PrincipalOutstanding, e.Currency) }

type StockEntry struct {
	ID                string  `json:"id"`
	Name              string  `json:"name,omitempty"`
	Ticker            string  `json:"ticker,omitempty"`
	ISIN              string  `json:"isin,omitempty"`
	Shares            Decimal `json:"shares"`
	InitialInvestment Decimal `json:"initial_investment"`
	MarketValue       Decimal `json:"market_value"`
	Currency          string  `json:"currency"`
}

func (e StockEntry) EntryID() string          { return e.ID }
func (e StockEntry) Valuation() MonetaryEntry { return Money(e.MarketValue, e.Currency) }

type FundEntry struct {
	ID                string  `json:"id"`
	Name              string  `json:"name,omitempty"`
	ISIN              string  `json:"isin,omitempty"`
	Shares            Decimal `json:"shares"`
	InitialInvestment Decimal `json:"initial_investment"`
	MarketValue       Decimal `json:"market_value"`
	Currency          string  `json:"currency"`
	PortfolioID       string  `json:"portfolio_id,omitempty"`
}

func (e FundEntry) EntryID() string          { return e.ID }
func (e FundEntry) Valuation() MonetaryEntry { return Money(e.MarketValue, e.Currency) }

// FundPortfolioEntry wraps funds that are also listed as FundEntry.
type FundPortfolioEntry struct {
	ID                string  `json:"id"`
	Name              string  `json:"name,omitempty"`
	InitialInvestment Decimal `json:"initial_investment"`
	MarketValue       Decimal `json:"market_value"`
	Currency          string  `json:"currency"`
}

func (e FundPortfolioEntry) EntryID() string          { return e.ID }
func (e FundPortfolioEntry) Valuation() MonetaryEntry { return Money(e.MarketValue, e.Currency) }

type DepositEntry struct {
	ID                string     `json:"id"`
	Name              string     `json:"name,omitempty"`
	Amount            Decimal    `json:"amount"`
	ExpectedInterests Decimal    `json:"expected_interests"`
	InterestRate      Decimal    `json:"interest_rate"`
	Creation          *date.Date `json:"creation,omitempty"`
	Maturity          *date.Date `json:"maturity,omitempty"`
	Currency          string     `json:"currency"`
}

func (e DepositEntry) EntryID() string          { return e.ID }
func (e DepositEntry) Valuation() MonetaryEntry { return Money(e.Amount, e.Currency) }

type FactoringEntry struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	Amount           Decimal    `json:"amount"`
	InterestRate     Decimal    `json:"interest_rate"`
	LateInterestRate Decimal    `json:"late_interest_rate"`
	Start            *date.Date `json:"start,omitempty"`
	Maturity         *date.Date `json:"maturity,omitempty"`
	State            string     `json:"state,omitempty"`
	Currency         string     `json:"currency"`
}

func (e FactoringEntry) EntryID() string          { return e.ID }
func (e FactoringEntry) Valuation() MonetaryEntry { return Money(e.Amount, e.Currency) }

type RealEstateCFEntry struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name,omitempty"`
	Amount               Decimal    `json:"amount"`
	PendingAmount        Decimal    `json:"pending_amount"`
	InterestRate         Decimal    `json:"interest_rate"`
	Start                *date.Date `json:"start,omitempty"`
	Maturity             *date.Date `json:"maturity,omitempty"`
	ExtendedMaturity     *date.Date `json:"extended_maturity,omitempty"`
	ExtendedInterestRate Decimal    `json:"extended_interest_rate"`
	State                string     `json:"state,omitempty"`
	Currency             string     `json:"currency"`
}

func (e RealEstateCFEntry) EntryID() string          { return e.ID }
func (e RealEstateCFEntry) Valuation() MonetaryEntry { return Money(e.PendingAmount, e.Currency) }

// CrowdlendingTotal is an aggregate-only product: one total per entity.
type CrowdlendingTotal struct {
	ID                   string  `json:"id,omitempty"`
	Total                Decimal `json:"total"`
	WeightedInterestRate Decimal `json:"weighted_interest_rate"`
	Currency             string  `json:"currency"`
}

type BondEntry struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	NominalValue Decimal    `json:"nominal_value"`
	MarketValue  Decimal    `json:"market_value"`
	InterestRate Decimal    `json:"interest_rate"`
	Maturity     *date.Date `json:"maturity,omitempty"`
	Currency     string     `json:"currency"`
}

func (e BondEntry) EntryID() string { return e.ID }

// Valuation uses the market value, or the nominal value when the market value is not known.
func (e BondEntry) Valuation() MonetaryEntry {
	if e.MarketValue.IsZero() || !e.MarketValue.IsFinite() {
		return Money(e.NominalValue, e.Currency)
	}
	return Money(e.MarketValue, e.Currency)
}

type DerivativeEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	MarketValue Decimal `json:"market_value"`
	Currency    string  `json:"currency"`
}

func (e DerivativeEntry) EntryID() string          { return e.ID }
func (e DerivativeEntry) Valuation() MonetaryEntry { return Money(e.MarketValue, e.Currency) }

// CryptoWallet holds crypto assets. Wallets with no assets are valued as an asset themselves.
type CryptoWallet struct {
	ID      string        `json:"id"`
	Name    string        `json:"name,omitempty"`
	Address string        `json:"address,omitempty"`
	Assets  []CryptoAsset `json:"assets,omitempty"`

	// Fields of a wallet without asset list.
	CryptoAsset
}

type CryptoAsset struct {
	ID              string  `json:"id,omitempty"`
	Name            string  `json:"name,omitempty"`
	Symbol          string  `json:"symbol,omitempty"`
	ContractAddress string  `json:"contract_address,omitempty"`
	Amount          Decimal `json:"amount"`
	MarketValue     Decimal `json:"market_value"`
	Currency        string  `json:"currency,omitempty"`
}

func (e CryptoWallet) EntryID() string { return e.ID }

// CommodityType is the kind of precious metal.
type CommodityType string

const (
	Gold      CommodityType = "GOLD"
	Silver    CommodityType = "SILVER"
	Platinum  CommodityType = "PLATINUM"
	Palladium CommodityType = "PALLADIUM"
)

// WeightUnit is the unit a commodity amount is expressed in.
type WeightUnit string

const (
	TroyOunce WeightUnit = "TROY_OUNCE"
	Gram      WeightUnit = "GRAM"
)

type CommodityEntry struct {
	ID                string        `json:"id"`
	Name              string        `json:"name,omitempty"`
	Type              CommodityType `json:"type"`
	Amount            Decimal       `json:"amount"`
	Unit              WeightUnit    `json:"unit"`
	InitialInvestment Decimal       `json:"initial_investment"`
	MarketValue       Decimal       `json:"market_value"`
	Currency          string        `json:"currency"`
}

func (e CommodityEntry) EntryID() string { return e.ID }

// Entity is a financial institution or data source.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// GlobalPosition is one entity's holdings.
type GlobalPosition struct {
	ID       string   `json:"id,omitempty"`
	Entity   Entity   `json:"entity"`
	Products Products `json:"products"`
}

// EntitiesPosition is a snapshot of all the holdings, keyed by entity.
type EntitiesPosition struct {
	Positions map[string]GlobalPosition `json:"positions"`
}

// Keys returns the position keys in sorted order, the iteration order of every aggregate.
func (p *EntitiesPosition) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.Positions))
	for k := range p.Positions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
