package services

import (
	"testing"

	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
)

func TestApplyConsumesSeats(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)

	s1, _ := createStudent(t, db, "asha", "21BCE0001")
	s2, _ := createStudent(t, db, "vikram", "21BCE0002")
	s3, _ := createStudent(t, db, "meera", "21BCE0003")

	svc := NewApplicationService(db, nil)

	if _, err := svc.Create(s1.ID, &ApplyRequest{ProjectID: project.ID}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := svc.Create(s2.ID, &ApplyRequest{ProjectID: project.ID}); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 0 {
		t.Fatalf("seats_available = %d, expected 0", got)
	}

	_, err := svc.Create(s3.ID, &ApplyRequest{ProjectID: project.ID})
	wantAppError(t, err, "no seats available")

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 0 {
		t.Fatalf("seats_available after failed apply = %d, expected 0", got)
	}
}

func TestApplyDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 5)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	if _, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	_, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})
	wantAppError(t, err, "you have already applied to this project")

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 4 {
		t.Fatalf("seats_available = %d, expected 4", got)
	}
}

func TestApplyLimitThreeProjects(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	for i := 0; i < 3; i++ {
		project := createApprovedProject(t, db, faculty.ID, "Project "+string(rune('A'+i)), 2)
		if _, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID}); err != nil {
			t.Fatalf("apply %d failed: %v", i+1, err)
		}
	}

	fourth := createApprovedProject(t, db, faculty.ID, "Project D", 2)
	_, err := svc.Create(student.ID, &ApplyRequest{ProjectID: fourth.ID})
	wantAppError(t, err, "you can apply to at most 3 projects")
}

func TestApplyUnapprovedProjectRejected(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	project := &models.Project{
		FacultyID:      faculty.ID,
		Title:          "Pending Project",
		Status:         models.ProjectStatusPending,
		Seats:          2,
		SeatsAvailable: 2,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	svc := NewApplicationService(db, nil)
	_, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})
	wantAppError(t, err, "project is not yet approved")
}

func TestApplyRequiresStudentProfile(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)

	svc := NewApplicationService(db, nil)
	_, err := svc.Create(facultyUser.ID, &ApplyRequest{ProjectID: project.ID})
	wantAppError(t, err, "student profile not found")
}

func TestSelectForceRejectsOtherApplications(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	_, otherFaculty := createFaculty(t, db, "prof_iyer", "SENSE")

	target := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	other := createApprovedProject(t, db, otherFaculty.ID, "IoT Gateway", 2)

	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app1, err := svc.Create(student.ID, &ApplyRequest{ProjectID: target.ID})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	app2, err := svc.Create(student.ID, &ApplyRequest{ProjectID: other.ID})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := svc.Select(facultyUser.ID, app1.ID); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	if got := reloadApplication(t, db, app1.ID).Status; got != models.ApplicationStatusSelected {
		t.Fatalf("selected application status = %q", got)
	}
	if got := reloadApplication(t, db, app2.ID).Status; got != models.ApplicationStatusRejected {
		t.Fatalf("other application status = %q, expected rejected", got)
	}
	// Force-rejection does not hand the seat back to the other project.
	if got := reloadProject(t, db, other.ID).SeatsAvailable; got != 1 {
		t.Fatalf("other project seats_available = %d, expected 1", got)
	}
}

func TestSelectStudentAlreadySelectedElsewhere(t *testing.T) {
	db := newTestDB(t)
	f1User, f1 := createFaculty(t, db, "prof_rao", "SCOPE")
	f2User, f2 := createFaculty(t, db, "prof_iyer", "SENSE")

	p1 := createApprovedProject(t, db, f1.ID, "Smart Attendance", 2)
	p2 := createApprovedProject(t, db, f2.ID, "IoT Gateway", 2)

	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app1, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: p1.ID})
	app2, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: p2.ID})

	if _, err := svc.Select(f1User.ID, app1.ID); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	// app2 was force-rejected by the first select; reset it to pending to
	// exercise the cross-project guard directly.
	if err := db.Model(&models.Application{}).Where("id = ?", app2.ID).
		Update("status", models.ApplicationStatusPending).Error; err != nil {
		t.Fatalf("reset application: %v", err)
	}

	_, err := svc.Select(f2User.ID, app2.ID)
	wantAppError(t, err, "student is already selected for another project")
}

func TestSelectRequiresProjectOwnership(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	intruderUser, _ := createFaculty(t, db, "prof_iyer", "SENSE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})

	_, err := svc.Select(intruderUser.ID, app.ID)
	wantAppError(t, err, "you do not own this application's project")
}

func TestRejectRestoresSeat(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 1 {
		t.Fatalf("seats_available after apply = %d, expected 1", got)
	}

	if _, err := svc.Reject(facultyUser.ID, app.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 2 {
		t.Fatalf("seats_available after reject = %d, expected 2", got)
	}

	_, err := svc.Reject(facultyUser.ID, app.ID)
	wantAppError(t, err, "application is already rejected")

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 2 {
		t.Fatalf("seats_available after double reject = %d, expected 2", got)
	}
}

func TestShortlistPendingOnly(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})

	if _, err := svc.Shortlist(facultyUser.ID, app.ID); err != nil {
		t.Fatalf("shortlist failed: %v", err)
	}
	if got := reloadApplication(t, db, app.ID).Status; got != models.ApplicationStatusShortlisted {
		t.Fatalf("status = %q, expected shortlisted", got)
	}

	// Shortlisting does not touch the seat count.
	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 1 {
		t.Fatalf("seats_available = %d, expected 1", got)
	}

	_, err := svc.Shortlist(facultyUser.ID, app.ID)
	wantAppError(t, err, "only pending applications can be shortlisted")
}

func TestWithdrawRestoresSeat(t *testing.T) {
	db := newTestDB(t)
	_, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})

	if err := svc.Withdraw(student.ID, app.ID); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	if got := reloadProject(t, db, project.ID).SeatsAvailable; got != 2 {
		t.Fatalf("seats_available after withdraw = %d, expected 2", got)
	}

	var count int64
	db.Model(&models.Application{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Fatalf("application count after withdraw = %d, expected 0", count)
	}

	// Withdrawal frees the slot for a fresh application.
	if _, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID}); err != nil {
		t.Fatalf("re-apply after withdraw failed: %v", err)
	}
}

func TestWithdrawSelectedForbidden(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, _ := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})
	if _, err := svc.Select(facultyUser.ID, app.ID); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	err := svc.Withdraw(student.ID, app.ID)
	wantAppError(t, err, "cannot withdraw a selected application")
}

func TestApplyRequestDefaults(t *testing.T) {
	req := &ApplyRequest{ProjectID: 7}

	if req.Priority != 0 {
		t.Errorf("default Priority should be 0, got %d", req.Priority)
	}
	if req.CGPA != nil {
		t.Error("default CGPA should be nil")
	}
}

func TestListScopedByRole(t *testing.T) {
	db := newTestDB(t)
	ownerUser, owner := createFaculty(t, db, "prof_rao", "SCOPE")
	_, other := createFaculty(t, db, "prof_iyer", "SCOPE")
	ownProject := createApprovedProject(t, db, owner.ID, "Smart Attendance", 3)
	otherProject := createApprovedProject(t, db, other.ID, "Crop Yield Prediction", 3)

	asha, _ := createStudent(t, db, "asha", "21BCE0001")
	vikram, _ := createStudent(t, db, "vikram", "21BCE0002")

	svc := NewApplicationService(db, nil)
	if _, err := svc.Create(asha.ID, &ApplyRequest{ProjectID: ownProject.ID}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := svc.Create(asha.ID, &ApplyRequest{ProjectID: otherProject.ID}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := svc.Create(vikram.ID, &ApplyRequest{ProjectID: otherProject.ID}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// A student sees only their own applications.
	got, err := svc.List(asha.ID, false)
	if err != nil {
		t.Fatalf("student list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("student list returned %d applications, expected 2", len(got))
	}

	// A faculty member sees applications on their own projects only.
	got, err = svc.List(ownerUser.ID, false)
	if err != nil {
		t.Fatalf("faculty list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("faculty list returned %d applications, expected 1", len(got))
	}
	if got[0].ProjectID != ownProject.ID {
		t.Fatalf("faculty list returned application for project %d, expected %d", got[0].ProjectID, ownProject.ID)
	}

	// An admin sees everything.
	got, err = svc.List(0, true)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("admin list returned %d applications, expected 3", len(got))
	}

	// An account with no role profile sees an empty list.
	bare := &models.User{Username: "registrar", Password: "x", Email: "registrar@example.com"}
	if err := db.Create(bare).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	got, err = svc.List(bare.ID, false)
	if err != nil {
		t.Fatalf("profileless list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("profileless list returned %d applications, expected 0", len(got))
	}
}

func TestSelectFromShortlisted(t *testing.T) {
	db := newTestDB(t)
	facultyUser, faculty := createFaculty(t, db, "prof_rao", "SCOPE")
	project := createApprovedProject(t, db, faculty.ID, "Smart Attendance", 2)
	student, _ := createStudent(t, db, "asha", "21BCE0001")

	svc := NewApplicationService(db, nil)
	app, err := svc.Create(student.ID, &ApplyRequest{ProjectID: project.ID})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := svc.Shortlist(facultyUser.ID, app.ID); err != nil {
		t.Fatalf("shortlist failed: %v", err)
	}

	selected, err := svc.Select(facultyUser.ID, app.ID)
	if err != nil {
		t.Fatalf("select after shortlist failed: %v", err)
	}
	if selected.Status != models.ApplicationStatusSelected {
		t.Fatalf("status = %q, expected %q", selected.Status, models.ApplicationStatusSelected)
	}
}
