package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

func TestTrackService_CreateTrack_CopiesCommitteeFromActor(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)

	track, err := env.trackService.CreateTrack(head.Email, CreateTrackInput{Name: "Backend"})
	require.NoError(t, err)
	require.Equal(t, "software", track.Committee)
}

func TestTrackService_CreateTrack_RequiresHead(t *testing.T) {
	env := setupServiceTestEnv(t)

	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	_, err := env.trackService.CreateTrack(member.Email, CreateTrackInput{Name: "Backend"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTrackService_CreateTrack_EmptyName(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)

	_, err := env.trackService.CreateTrack(head.Email, CreateTrackInput{Name: "   "})
	require.ErrorIs(t, err, ErrTrackNameRequired)
}

func TestTrackService_UpdateTrack_CommitteeImmutable(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	track := createTestTrack(t, env, head.Email, "Backend")

	newName := "Backend v2"
	updated, err := env.trackService.UpdateTrack(head.Email, track.ID, UpdateTrackInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Backend v2", updated.Name)
	require.Equal(t, "software", updated.Committee)
}

func TestTrackService_Apply_DuplicateConflicts(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	first, err := env.trackService.Apply(applicant.Email, track.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicantPending, first.Status)

	_, err = env.trackService.Apply(applicant.Email, track.ID)
	require.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestTrackService_Apply_TrackNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)

	_, err := env.trackService.Apply(applicant.Email, 999)
	require.ErrorIs(t, err, ErrTrackNotFound)
}

func TestTrackService_Decide_AcceptDeliversOneMessage(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(applicant.Email, track.ID)
	require.NoError(t, err)

	decided, err := env.trackService.Decide(head.Email, track.ID, applicant.ID, models.ApplicantAccepted)
	require.NoError(t, err)
	require.Equal(t, models.ApplicantAccepted, decided.Status)

	stored, err := env.trackRepo.FindApplicant(track.ID, applicant.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicantAccepted, stored.Status)

	var msgs []models.Message
	require.NoError(t, env.db.Where("member_id = ?", applicant.ID).Find(&msgs).Error)
	require.Len(t, msgs, 1)
	require.True(t, strings.Contains(msgs[0].Title, "Backend"))
	require.Equal(t, models.MessageStatusUnread, msgs[0].Status)
}

func TestTrackService_Decide_RejectMessageMentionsTrack(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Embedded")

	_, err := env.trackService.Apply(applicant.Email, track.ID)
	require.NoError(t, err)

	_, err = env.trackService.Decide(head.Email, track.ID, applicant.ID, models.ApplicantRejected)
	require.NoError(t, err)

	var msg models.Message
	require.NoError(t, env.db.Where("member_id = ?", applicant.ID).First(&msg).Error)
	require.Contains(t, msg.Title, "Application Update")
	require.Contains(t, msg.Body, "Embedded")
}

func TestTrackService_Decide_ReDecideAllowedAndReNotifies(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(applicant.Email, track.ID)
	require.NoError(t, err)

	_, err = env.trackService.Decide(head.Email, track.ID, applicant.ID, models.ApplicantRejected)
	require.NoError(t, err)

	decided, err := env.trackService.Decide(head.Email, track.ID, applicant.ID, models.ApplicantAccepted)
	require.NoError(t, err)
	require.Equal(t, models.ApplicantAccepted, decided.Status)

	require.EqualValues(t, 2, countInboxMessages(t, env.db, applicant.ID))
}

func TestTrackService_Decide_InvalidDecision(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)

	_, err := env.trackService.Decide(head.Email, 1, 1, models.ApplicantPending)
	require.ErrorIs(t, err, ErrInvalidDecision)
}

func TestTrackService_Decide_CrossCommitteeForbidden(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	otherHead := createTestMember(t, env.db, "carol", "mechanics", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Apply(applicant.Email, track.ID)
	require.NoError(t, err)

	_, err = env.trackService.Decide(otherHead.Email, track.ID, applicant.ID, models.ApplicantAccepted)
	require.ErrorIs(t, err, ErrForbidden)

	// no decision, no notification
	stored, err := env.trackRepo.FindApplicant(track.ID, applicant.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicantPending, stored.Status)
	require.EqualValues(t, 0, countInboxMessages(t, env.db, applicant.ID))
}

func TestTrackService_Decide_ApplicantNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	_, err := env.trackService.Decide(head.Email, track.ID, member.ID, models.ApplicantAccepted)
	require.ErrorIs(t, err, ErrApplicantNotFound)
}

func TestTrackService_AddMember_SetSemantics(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))
	// adding again is a no-op
	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))

	members, err := env.trackRepo.ListMembers(track.ID, models.TrackRoleMember)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestTrackService_MembershipSetsAreIndependent(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))
	require.NoError(t, env.trackService.AddSupervisor(head.Email, track.ID, member.ID))

	require.NoError(t, env.trackService.RemoveSupervisor(head.Email, track.ID, member.ID))

	members, err := env.trackRepo.ListMembers(track.ID, models.TrackRoleMember)
	require.NoError(t, err)
	require.Len(t, members, 1)

	supervisors, err := env.trackRepo.ListMembers(track.ID, models.TrackRoleSupervisor)
	require.NoError(t, err)
	require.Empty(t, supervisors)
}

func TestTrackService_RemoveMember_AbsentIsNoop(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.RemoveMember(head.Email, track.ID, member.ID))
}

func TestTrackService_AddMember_CrossCommitteeForbidden(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	otherHead := createTestMember(t, env.db, "carol", "mechanics", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	err := env.trackService.AddMember(otherHead.Email, track.ID, member.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTrackService_MyApplications(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	applicant := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	trackA := createTestTrack(t, env, head.Email, "Backend")
	trackB := createTestTrack(t, env, head.Email, "Frontend")

	_, err := env.trackService.Apply(applicant.Email, trackA.ID)
	require.NoError(t, err)
	_, err = env.trackService.Apply(applicant.Email, trackB.ID)
	require.NoError(t, err)

	apps, err := env.trackService.MyApplications(applicant.Email)
	require.NoError(t, err)
	require.Len(t, apps, 2)
}

func TestTrackService_ListApplicants_ScopedToCommittee(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	otherHead := createTestMember(t, env.db, "carol", "mechanics", models.RoleHead)
	createTestTrack(t, env, head.Email, "Backend")
	createTestTrack(t, env, otherHead.Email, "CAD")

	tracks, err := env.trackService.ListApplicants(head.Email)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	require.Equal(t, "Backend", tracks[0].Name)
}

func TestTrackService_DeleteTrack_CascadesRelations(t *testing.T) {
	env := setupServiceTestEnv(t)

	head := createTestMember(t, env.db, "alice", "software", models.RoleHead)
	member := createTestMember(t, env.db, "bob", "software", models.RoleMember)
	track := createTestTrack(t, env, head.Email, "Backend")

	require.NoError(t, env.trackService.AddMember(head.Email, track.ID, member.ID))
	_, err := env.trackService.Apply(member.Email, track.ID)
	require.NoError(t, err)

	require.NoError(t, env.trackService.DeleteTrack(head.Email, track.ID))

	_, err = env.trackService.GetTrack(track.ID)
	require.ErrorIs(t, err, ErrTrackNotFound)

	var memberships int64
	require.NoError(t, env.db.Model(&models.TrackMember{}).Where("track_id = ?", track.ID).Count(&memberships).Error)
	require.Zero(t, memberships)

	var applicants int64
	require.NoError(t, env.db.Model(&models.TrackApplicant{}).Where("track_id = ?", track.ID).Count(&applicants).Error)
	require.Zero(t, applicants)
}
