package services

import (
	"testing"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
)

func TestCommitteeApplyRequiresFaculty(t *testing.T) {
	db := newTestDB(t)
	studentUser, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewCommitteeService(db)
	_, err := svc.Apply(studentUser.ID, &CommitteeApplyRequest{
		Degree: "PhD", Specialization: "AI", YearsOfExperience: 5,
	})
	wantAppError(t, err, "only faculty members can apply to the committee")
}

func TestCommitteeApplyStartsUnapproved(t *testing.T) {
	db := newTestDB(t)
	facultyUser, _ := createFaculty(t, db, "prof_rao", "SCOPE")

	svc := NewCommitteeService(db)
	committee, err := svc.Apply(facultyUser.ID, &CommitteeApplyRequest{
		Degree: "PhD", Specialization: "AI", YearsOfExperience: 5,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if committee.ApprovedByAdmin {
		t.Error("new committee profile must start unapproved")
	}

	_, err = svc.Apply(facultyUser.ID, &CommitteeApplyRequest{
		Degree: "PhD", Specialization: "AI", YearsOfExperience: 5,
	})
	wantAppError(t, err, "you have already applied to the committee")
}

func TestCommitteeApproveUnlocksReview(t *testing.T) {
	db := newTestDB(t)
	facultyUser, _ := createFaculty(t, db, "prof_sharma", "SCOPE")
	_, owner := createFaculty(t, db, "prof_rao", "SCOPE")

	project := &models.Project{FacultyID: owner.ID, Title: "Pending", Status: models.ProjectStatusPending, Seats: 2, SeatsAvailable: 2}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	svc := NewCommitteeService(db)
	committee, err := svc.Apply(facultyUser.ID, &CommitteeApplyRequest{
		Degree: "PhD", Specialization: "AI", YearsOfExperience: 5,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	projects := NewProjectService(db)
	_, err = projects.Approve(facultyUser.ID, project.ID, &ReviewRequest{})
	wantAppError(t, err, "only approved committee members can review projects")

	if _, err := svc.Approve(committee.ID); err != nil {
		t.Fatalf("admin approve failed: %v", err)
	}

	if _, err := projects.Approve(facultyUser.ID, project.ID, &ReviewRequest{}); err != nil {
		t.Fatalf("review after admin approval failed: %v", err)
	}
}

func TestCommitteeUpdateOwnProfileOnly(t *testing.T) {
	db := newTestDB(t)
	ownerUser, _ := createFaculty(t, db, "prof_rao", "SCOPE")
	intruderUser, _ := createFaculty(t, db, "prof_iyer", "SENSE")

	svc := NewCommitteeService(db)
	committee, err := svc.Apply(ownerUser.ID, &CommitteeApplyRequest{
		Degree: "PhD", Specialization: "AI", YearsOfExperience: 5,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	years := 9
	if _, err := svc.Update(ownerUser.ID, committee.ID, &UpdateCommitteeRequest{YearsOfExperience: &years}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	_, err = svc.Update(intruderUser.ID, committee.ID, &UpdateCommitteeRequest{Degree: "MSc"})
	wantAppError(t, err, "you can only update your own profile")
}
