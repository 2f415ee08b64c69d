// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are testify mocks: set expectations with On and check them with
// AssertExpectations. Their WithTx returns the mock itself, so expectations
// apply unchanged inside a transaction. Service mocks use function fields,
// and any field left nil returns zero values.
//
//	users := &mocks.MockUserStore{}
//	users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
//	svc := service.NewUserService(users, mocks.NewTransactor(), nil)
package mocks
