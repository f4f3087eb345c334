package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/teamwork/internal/submission/model"
	"github.com/festy23/teamwork/internal/testutil"
	userModel "github.com/festy23/teamwork/internal/user/model"
)

func TestRepository_UpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)
	repo := New(db, testutil.Logger())
	leader := testutil.SeedUser(t, db, "lead", userModel.RoleUser)
	team := testutil.SeedTeam(t, db, leader, "Alpha")
	a := testutil.SeedAssignment(t, db, team.ID, "hw1", time.Now().Add(time.Hour))

	first, err := repo.Upsert(ctx, &model.Submission{
		AssignmentID: a.ID,
		UserID:       leader.ID,
		FileName:     "v1.txt",
		StoredName:   "s1.txt",
		FileData:     []byte("one"),
		ContentSize:  3,
		SubmittedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.txt", first.FileName)
	assert.Nil(t, first.FileData)

	second, err := repo.Upsert(ctx, &model.Submission{
		AssignmentID: a.ID,
		UserID:       leader.ID,
		FileName:     "LATE_EDIT_v2.txt",
		StoredName:   "s2.txt",
		FileData:     []byte("second"),
		ContentSize:  6,
		IsLate:       true,
		SubmittedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "LATE_EDIT_v2.txt", second.FileName)
	assert.Equal(t, "s2.txt", second.StoredName)
	assert.True(t, second.IsLate)

	var count int64
	db.Model(&model.Submission{}).Count(&count)
	assert.Equal(t, int64(1), count)

	full, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), full.FileData)
}

func TestRepository_Lists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLite(t)
	repo := New(db, testutil.Logger())
	leader := testutil.SeedUser(t, db, "lead", userModel.RoleUser)
	zed := testutil.SeedUser(t, db, "zed", userModel.RoleUser)
	amy := testutil.SeedUser(t, db, "amy", userModel.RoleUser)
	team := testutil.SeedTeam(t, db, leader, "Alpha")
	other := testutil.SeedTeam(t, db, leader, "Other")
	early := testutil.SeedAssignment(t, db, team.ID, "early", time.Now().Add(time.Hour))
	late := testutil.SeedAssignment(t, db, team.ID, "late", time.Now().Add(48*time.Hour))
	foreign := testutil.SeedAssignment(t, db, other.ID, "foreign", time.Now().Add(time.Hour))

	testutil.SeedSubmission(t, db, late.ID, zed.ID, "z.txt", []byte("z"))
	testutil.SeedSubmission(t, db, early.ID, zed.ID, "z1.txt", []byte("z"))
	testutil.SeedSubmission(t, db, early.ID, amy.ID, "a1.txt", []byte("a"))
	testutil.SeedSubmission(t, db, foreign.ID, amy.ID, "f.txt", []byte("f"))

	byAssignment, err := repo.ListByAssignment(ctx, early.ID)
	require.NoError(t, err)
	require.Len(t, byAssignment, 2)
	assert.Equal(t, "amy", byAssignment[0].Username)
	assert.Equal(t, "early", byAssignment[0].AssignmentName)
	assert.Equal(t, "zed", byAssignment[1].Username)

	byTeam, err := repo.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, byTeam, 3)
	assert.Equal(t, "early", byTeam[0].AssignmentName)
	assert.Equal(t, "early", byTeam[1].AssignmentName)
	assert.Equal(t, "late", byTeam[2].AssignmentName)

	ids, err := repo.SubmittedAssignmentIDs(ctx, team.ID, amy.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{early.ID}, ids)

	_, err = repo.GetByAssignmentAndUser(ctx, late.ID, amy.ID)
	assert.ErrorIs(t, err, model.ErrSubmissionNotFound)
	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, model.ErrSubmissionNotFound)

	require.NoError(t, repo.DeleteByUser(ctx, amy.ID))
	ids, err = repo.SubmittedAssignmentIDs(ctx, team.ID, amy.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
