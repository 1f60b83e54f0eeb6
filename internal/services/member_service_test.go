package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/utils"
)

func TestMemberService_ListMembers_Paginates(t *testing.T) {
	env := setupServiceTestEnv(t)

	for i := 0; i < 25; i++ {
		createTestMember(t, env.db, fmt.Sprintf("member%02d", i), "software", models.RoleMember)
	}

	page1, total, err := env.memberService.ListMembers(utils.PaginationParams{Page: 1, Limit: 10, Offset: 0})
	require.NoError(t, err)
	require.EqualValues(t, 25, total)
	require.Len(t, page1, 10)

	page3, total, err := env.memberService.ListMembers(utils.PaginationParams{Page: 3, Limit: 10, Offset: 20})
	require.NoError(t, err)
	require.EqualValues(t, 25, total)
	require.Len(t, page3, 5)

	require.NotEqual(t, page1[0].ID, page3[0].ID)
}

func TestMemberService_Inbox_NewestFirst(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(member.Email, track.ID)
	require.NoError(t, err)
	_, err = env.trackService.Decide(head.Email, track.ID, member.ID, models.ApplicantRejected)
	require.NoError(t, err)
	_, err = env.trackService.Decide(head.Email, track.ID, member.ID, models.ApplicantAccepted)
	require.NoError(t, err)

	msgs, err := env.memberService.Inbox(member.Email)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[0].Title, "Application Accepted")
}

func TestMemberService_MarkMessage(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(member.Email, track.ID)
	require.NoError(t, err)
	_, err = env.trackService.Decide(head.Email, track.ID, member.ID, models.ApplicantAccepted)
	require.NoError(t, err)

	msgs, err := env.memberService.Inbox(member.Email)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	updated, err := env.memberService.MarkMessage(member.Email, msgs[0].ID, models.MessageStatusRead)
	require.NoError(t, err)
	require.Equal(t, models.MessageStatusRead, updated.Status)
}

func TestMemberService_MarkMessage_OtherMembersMessage(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	other := createTestMember(t, env.db, "carol", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(member.Email, track.ID)
	require.NoError(t, err)
	_, err = env.trackService.Decide(head.Email, track.ID, member.ID, models.ApplicantAccepted)
	require.NoError(t, err)

	msgs, err := env.memberService.Inbox(member.Email)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = env.memberService.MarkMessage(other.Email, msgs[0].ID, models.MessageStatusRead)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMemberService_AssignTask_NotifiesMember(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	task, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{
		Title:       "line follower",
		Description: "build and document the line follower",
	})
	require.NoError(t, err)
	require.Equal(t, member.ID, task.MemberID)
	require.False(t, task.Submitted())

	msgs, err := env.memberService.Inbox(member.Email)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Title, "line follower")
}

func TestMemberService_AssignTask_CrossCommitteeForbidden(t *testing.T) {
	env := setupServiceTestEnv(t)

	otherHead := createTestMember(t, env.db, "carol", "mechanics", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	_, err := env.memberService.AssignTask(otherHead.Email, member.ID, AssignTaskInput{Title: "line follower"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestMemberService_SubmitAssignedTask(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	other := createTestMember(t, env.db, "carol", "software", models.RoleMember)

	task, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{Title: "line follower"})
	require.NoError(t, err)

	_, err = env.memberService.SubmitAssignedTask(member.Email, task.ID, "")
	require.ErrorIs(t, err, ErrSubmissionLinkInvalid)

	_, err = env.memberService.SubmitAssignedTask(other.Email, task.ID, "https://example.com/repo")
	require.ErrorIs(t, err, ErrMemberTaskNotFound)

	submitted, err := env.memberService.SubmitAssignedTask(member.Email, task.ID, "https://example.com/repo")
	require.NoError(t, err)
	require.True(t, submitted.Submitted())
	require.NotNil(t, submitted.SubmissionDate)
}

func TestMemberService_RateAssignedTask_WeightsAndAggregates(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	first, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{Title: "line follower"})
	require.NoError(t, err)
	second, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{Title: "maze solver"})
	require.NoError(t, err)

	// 10*0.6 + 5*0.4 = 8
	rated, err := env.memberService.RateAssignedTask(head.Email, member.ID, first.ID, MemberTaskEvaluation{
		HeadEvaluation:     10,
		DeadlineEvaluation: 5,
	})
	require.NoError(t, err)
	require.NotNil(t, rated.Rate)
	require.InDelta(t, 8.0, *rated.Rate, 0.0001)

	// 5*0.6 + 5*0.4 = 5; member rate becomes (8+5)/2
	_, err = env.memberService.RateAssignedTask(head.Email, member.ID, second.ID, MemberTaskEvaluation{
		HeadEvaluation:     5,
		DeadlineEvaluation: 5,
	})
	require.NoError(t, err)

	var reloaded models.Member
	require.NoError(t, env.db.First(&reloaded, member.ID).Error)
	require.NotNil(t, reloaded.Rate)
	require.InDelta(t, 6.5, *reloaded.Rate, 0.0001)
}

func TestMemberService_RateAssignedTask_InvalidEvaluation(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	task, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{Title: "line follower"})
	require.NoError(t, err)

	_, err = env.memberService.RateAssignedTask(head.Email, member.ID, task.ID, MemberTaskEvaluation{
		HeadEvaluation:     11,
		DeadlineEvaluation: 5,
	})
	require.ErrorIs(t, err, ErrInvalidEvaluation)
}
