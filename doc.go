// Package networth aggregates the holdings of many financial entities, in
// many currencies, into one net worth.
//
// The core functionalities include:
//   - Conversion: amounts, commodities and crypto assets are converted with a
//     sparse ExchangeRates table. A missing rate leaves an amount unconverted.
//   - Aggregation: AssetDistribution, EntityDistribution and TotalNetWorth
//     walk an EntitiesPosition snapshot. Real estate counts as owned equity,
//     pending flows as a forward-looking bucket.
//   - Manual drafts: MergeDisplayItems reconciles synced entries with local
//     overrides, additions and deletions held by a DraftSession.
//
// Every function of this package is pure and works on immutable snapshots,
// so it is safe to call concurrently. Money is never computed with floats:
// see Decimal.
//
// This package serves as the foundational logic for the `nw` command-line tool.
package networth
