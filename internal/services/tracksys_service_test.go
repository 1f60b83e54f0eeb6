package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

func rateMember(t *testing.T, env serviceTestEnv, memberID uint64, rate float64) {
	t.Helper()
	require.NoError(t, env.db.Model(&models.Member{}).Where("id = ?", memberID).Update("rate", rate).Error)
}

func assignMemberTask(t *testing.T, env serviceTestEnv, memberID uint64, link string) {
	t.Helper()
	task := models.MemberTask{
		MemberID:       memberID,
		Title:          "assigned task",
		SubmissionLink: link,
	}
	require.NoError(t, env.db.Create(&task).Error)
}

func TestTrackSysService_Leaderboard_ExcludesUnratedMembers(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	rated := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	unrated := createTestMember(t, env.db, "carol", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, rated.ID))
	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, unrated.ID))
	rateMember(t, env, rated.ID, 7.5)

	board, err := env.trackSysService.GetTrackLeaderboard(track.ID)
	require.NoError(t, err)
	require.Len(t, board.TopPerformers, 1)
	require.Equal(t, rated.ID, board.TopPerformers[0].MemberID)
}

func TestTrackSysService_Leaderboard_OrderedAndCapped(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	track := createTestTrack(t, env, head.Email, "Backend")

	names := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	for i, name := range names {
		m := createTestMember(t, env.db, name, "software", models.RoleMember)
		require.NoError(t, env.trackService.AddMember(head.Email, track.ID, m.ID))
		rateMember(t, env, m.ID, float64(i+1))
	}

	board, err := env.trackSysService.GetTrackLeaderboard(track.ID)
	require.NoError(t, err)
	require.Len(t, board.TopPerformers, 5)

	require.Equal(t, 7.0, board.TopPerformers[0].Rate)
	require.Equal(t, 1, board.TopPerformers[0].Rank)
	for i := 1; i < len(board.TopPerformers); i++ {
		require.GreaterOrEqual(t, board.TopPerformers[i-1].Rate, board.TopPerformers[i].Rate)
		require.Equal(t, i+1, board.TopPerformers[i].Rank)
	}
}

func TestTrackSysService_Leaderboard_CompletedCountsUseLinkSentinel(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))
	rateMember(t, env, member.ID, 9)

	assignMemberTask(t, env, member.ID, "https://example.com/done")
	assignMemberTask(t, env, member.ID, "*")
	assignMemberTask(t, env, member.ID, "")

	board, err := env.trackSysService.GetTrackLeaderboard(track.ID)
	require.NoError(t, err)
	require.Len(t, board.TopPerformers, 1)
	require.Equal(t, 1, board.TopPerformers[0].CompletedTasks)
}

func TestTrackSysService_Leaderboard_FedByAssignedTaskFlow(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")
	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))

	task, err := env.memberService.AssignTask(head.Email, member.ID, AssignTaskInput{Title: "line follower"})
	require.NoError(t, err)
	_, err = env.memberService.SubmitAssignedTask(member.Email, task.ID, "https://example.com/repo")
	require.NoError(t, err)
	_, err = env.memberService.RateAssignedTask(head.Email, member.ID, task.ID, MemberTaskEvaluation{
		HeadEvaluation:     9,
		DeadlineEvaluation: 9,
	})
	require.NoError(t, err)

	board, err := env.trackSysService.GetTrackLeaderboard(track.ID)
	require.NoError(t, err)
	require.Len(t, board.TopPerformers, 1)
	require.Equal(t, member.ID, board.TopPerformers[0].MemberID)
	require.InDelta(t, 9.0, board.TopPerformers[0].Rate, 0.0001)
	require.Equal(t, 1, board.TopPerformers[0].CompletedTasks)
}

func TestTrackSysService_OverallLeaderboard_ExcludesNotAccepted(t *testing.T) {
	env := setupServiceTestEnv(t)

	createTestMember(t, env.db, "alice", "software", models.RoleHead)
	accepted := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	pending := createTestMember(t, env.db, "carol", "software", models.RoleNotAccepted)

	rateMember(t, env, accepted.ID, 6)
	rateMember(t, env, pending.ID, 10)

	leaderboard, err := env.trackSysService.GetLeaderboard()
	require.NoError(t, err)
	require.Len(t, leaderboard.Overall, 1)
	require.Equal(t, accepted.ID, leaderboard.Overall[0].MemberID)
}

func TestTrackSysService_Snapshot_Counters(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	createTestMember(t, env.db, "carol", "software", models.RoleNotAccepted)
	track := createTestTrack(t, env, head.Email, "Backend")
	createTestCourse(t, env, head.Email, track.ID, "Go Basics")

	_, err := env.trackService.Apply(member.Email, track.ID)
	require.NoError(t, err)

	snapshot, err := env.trackSysService.GetSnapshot()
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.Summary.TotalTracks)
	require.Equal(t, 1, snapshot.Summary.TotalCourses)
	require.Equal(t, 1, snapshot.Summary.TotalApplicants)
	// not-accepted members stay out of the member count
	require.Equal(t, 2, snapshot.Summary.TotalMembers)
}
