// Package mocks provides mock implementations for testing the pulse auth system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the auth ports. The generated files are committed so tests build without a
// codegen step; regenerate after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	accounts := mocks.NewMockAccountReader(ctrl)
//	accounts.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&acct, nil)
package mocks

// Generate mock for AccountReader interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=account_reader_mock.go github.com/target/pulse-api/internal/ports AccountReader

// Generate mock for TeamReader interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=team_reader_mock.go github.com/target/pulse-api/internal/ports TeamReader
