//go:build integration

// Package testdb provides utilities for database integration tests.
//
// A test binary starts one throwaway PostgreSQL container in TestMain, applies
// the embedded migrations, and then isolates each test either in a
// transaction that is rolled back (WithTx) or by truncating every table
// (Reset) when the code under test manages its own transactions.
//
// Setting SHOP_TEST_DATABASE_URL skips the container and uses that database
// instead.
//
//	func TestMain(m *testing.M) {
//	    os.Exit(testdb.RunMain(m, &testDB))
//	}
package testdb
