package services

import (
	"context"
	"testing"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/jwt"
	"github.com/gimhantharuke456/policeappbackend/internal/pkg/password"
	"github.com/gimhantharuke456/policeappbackend/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-0123456789abcdef012345"

type testDeps struct {
	db         *gorm.DB
	officers   repositories.OfficerRepository
	roster     repositories.RosterRepository
	violations repositories.ViolationRepository
	hasher     *password.Hasher
	tokens     *jwt.Manager
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	db := testutil.NewDB(t)
	return &testDeps{
		db:         db,
		officers:   repositories.NewOfficerRepository(db),
		roster:     repositories.NewRosterRepository(db),
		violations: repositories.NewViolationRepository(db),
		hasher:     password.NewHasher(bcrypt.MinCost, 2),
		tokens:     jwt.NewManager(testSecret),
	}
}

func (d *testDeps) authService() *AuthService {
	return NewAuthService(d.officers, d.roster, d.hasher, d.tokens, time.Second)
}

func (d *testDeps) allow(t *testing.T, svcs ...string) {
	t.Helper()
	for _, svc := range svcs {
		require.NoError(t, d.roster.Create(context.Background(), &models.RosterEntry{OfficerSVC: svc, IsActive: true}))
	}
}

func registerInput(svc string) *RegisterInput {
	return &RegisterInput{
		FullName:      "Officer " + svc,
		OfficerSVC:    svc,
		OfficerRank:   "Sergeant",
		PoliceStation: "Colombo Fort",
		Password:      "s3cret-pass",
	}
}

func strPtr(s string) *string {
	return &s
}
