package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Elzorno/AOP/internal/model"
	"github.com/Elzorno/AOP/internal/repository"
)

// newMockRepository 组装全部 Mock Repository 聚合
func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		term:        newMockTermRepo(),
		course:      newMockCourseRepo(),
		offering:    newMockOfferingRepo(),
		section:     newMockSectionRepo(),
		block:       newMockMeetingBlockRepo(),
		officeHour:  newMockOfficeHourRepo(),
		room:        newMockRoomRepo(),
		instructor:  newMockInstructorRepo(),
		lock:        newMockInstructorTermLockRepo(),
		publication: newMockPublicationRepo(),
	}
	repo := &repository.Repository{
		Term:                m.term,
		CatalogCourse:       m.course,
		Offering:            m.offering,
		Section:             m.section,
		MeetingBlock:        m.block,
		OfficeHourBlock:     m.officeHour,
		Room:                m.room,
		Instructor:          m.instructor,
		InstructorTermLock:  m.lock,
		SchedulePublication: m.publication,
	}
	return repo, m
}

// ── 测试聚合 ──

// mocks 持有全部 Mock Repository，便于测试中直接操作底层数据
type mocks struct {
	term        *mockTermRepo
	course      *mockCourseRepo
	offering    *mockOfferingRepo
	section     *mockSectionRepo
	block       *mockMeetingBlockRepo
	officeHour  *mockOfficeHourRepo
	room        *mockRoomRepo
	instructor  *mockInstructorRepo
	lock        *mockInstructorTermLockRepo
	publication *mockPublicationRepo
}

// ── Mock TermRepository ──

type mockTermRepo struct {
	terms map[string]*model.Term
}

func newMockTermRepo() *mockTermRepo {
	return &mockTermRepo{terms: make(map[string]*model.Term)}
}

func (m *mockTermRepo) Create(_ context.Context, term *model.Term) error {
	if term.TermID == "" {
		term.TermID = "term-" + term.Code
	}
	m.terms[term.TermID] = term
	return nil
}

func (m *mockTermRepo) GetByID(_ context.Context, id string) (*model.Term, error) {
	if t, ok := m.terms[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermRepo) List(_ context.Context) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTermRepo) Update(_ context.Context, term *model.Term) error {
	m.terms[term.TermID] = term
	return nil
}

func (m *mockTermRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.terms, id)
	return nil
}

// ── Mock CatalogCourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.CatalogCourse
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.CatalogCourse)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.CatalogCourse) error {
	if course.CourseID == "" {
		course.CourseID = "course-" + course.Code
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.CatalogCourse, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, activeOnly bool) ([]model.CatalogCourse, error) {
	var result []model.CatalogCourse
	for _, c := range m.courses {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.CatalogCourse) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock OfferingRepository ──

type mockOfferingRepo struct {
	offerings map[string]*model.Offering
	seq       int
}

func newMockOfferingRepo() *mockOfferingRepo {
	return &mockOfferingRepo{offerings: make(map[string]*model.Offering)}
}

func (m *mockOfferingRepo) Create(_ context.Context, offering *model.Offering) error {
	if offering.OfferingID == "" {
		m.seq++
		offering.OfferingID = fmt.Sprintf("off-%d", m.seq)
	}
	m.offerings[offering.OfferingID] = offering
	return nil
}

func (m *mockOfferingRepo) GetByID(_ context.Context, id string) (*model.Offering, error) {
	if o, ok := m.offerings[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfferingRepo) ListByTerm(_ context.Context, termID string) ([]model.Offering, error) {
	var result []model.Offering
	for _, o := range m.offerings {
		if o.TermID == termID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOfferingRepo) Update(_ context.Context, offering *model.Offering) error {
	m.offerings[offering.OfferingID] = offering
	return nil
}

func (m *mockOfferingRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.offerings, id)
	return nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections map[string]*model.Section
	seq      int
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section)}
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.Section) error {
	if section.SectionID == "" {
		m.seq++
		section.SectionID = fmt.Sprintf("sec-%d", m.seq)
	}
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) ListByOffering(_ context.Context, offeringID string) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		if s.OfferingID == offeringID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) ListByTerm(_ context.Context, termID string) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		if s.Offering != nil && s.Offering.TermID == termID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.Section) error {
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.sections, id)
	return nil
}

// ── Mock MeetingBlockRepository ──

type mockMeetingBlockRepo struct {
	blocks map[string]*model.MeetingBlock
	seq    int
}

func newMockMeetingBlockRepo() *mockMeetingBlockRepo {
	return &mockMeetingBlockRepo{blocks: make(map[string]*model.MeetingBlock)}
}

func (m *mockMeetingBlockRepo) Create(_ context.Context, block *model.MeetingBlock) error {
	if block.MeetingBlockID == "" {
		m.seq++
		block.MeetingBlockID = fmt.Sprintf("mb-%d", m.seq)
	}
	m.blocks[block.MeetingBlockID] = block
	return nil
}

func (m *mockMeetingBlockRepo) GetByID(_ context.Context, id string) (*model.MeetingBlock, error) {
	if b, ok := m.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMeetingBlockRepo) ListBySection(_ context.Context, sectionID string) ([]model.MeetingBlock, error) {
	var result []model.MeetingBlock
	for _, b := range m.blocks {
		if b.SectionID == sectionID {
			result = append(result, *b)
		}
	}
	return result, nil
}

// termID 通过预加载的 Section.Offering 判定，与真实 Repository 的联表语义一致
func (m *mockMeetingBlockRepo) ListByTerm(_ context.Context, termID string) ([]model.MeetingBlock, error) {
	var result []model.MeetingBlock
	for _, b := range m.blocks {
		if b.Section != nil && b.Section.Offering != nil && b.Section.Offering.TermID == termID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockMeetingBlockRepo) ListByTermAndRoom(_ context.Context, termID, roomID string) ([]model.MeetingBlock, error) {
	all, _ := m.ListByTerm(nil, termID)
	var result []model.MeetingBlock
	for _, b := range all {
		if b.RoomID != nil && *b.RoomID == roomID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockMeetingBlockRepo) ListByTermAndInstructor(_ context.Context, termID, instructorID string) ([]model.MeetingBlock, error) {
	all, _ := m.ListByTerm(nil, termID)
	var result []model.MeetingBlock
	for _, b := range all {
		if b.Section != nil && b.Section.InstructorID != nil && *b.Section.InstructorID == instructorID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockMeetingBlockRepo) Update(_ context.Context, block *model.MeetingBlock) error {
	m.blocks[block.MeetingBlockID] = block
	return nil
}

func (m *mockMeetingBlockRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.blocks, id)
	return nil
}

// ── Mock OfficeHourBlockRepository ──

type mockOfficeHourRepo struct {
	blocks map[string]*model.OfficeHourBlock
	seq    int
}

func newMockOfficeHourRepo() *mockOfficeHourRepo {
	return &mockOfficeHourRepo{blocks: make(map[string]*model.OfficeHourBlock)}
}

func (m *mockOfficeHourRepo) Create(_ context.Context, block *model.OfficeHourBlock) error {
	if block.OfficeHourBlockID == "" {
		m.seq++
		block.OfficeHourBlockID = fmt.Sprintf("oh-%d", m.seq)
	}
	m.blocks[block.OfficeHourBlockID] = block
	return nil
}

func (m *mockOfficeHourRepo) GetByID(_ context.Context, id string) (*model.OfficeHourBlock, error) {
	if b, ok := m.blocks[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOfficeHourRepo) ListByTerm(_ context.Context, termID string) ([]model.OfficeHourBlock, error) {
	var result []model.OfficeHourBlock
	for _, b := range m.blocks {
		if b.TermID == termID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockOfficeHourRepo) ListByTermAndInstructor(_ context.Context, termID, instructorID string) ([]model.OfficeHourBlock, error) {
	var result []model.OfficeHourBlock
	for _, b := range m.blocks {
		if b.TermID == termID && b.InstructorID == instructorID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockOfficeHourRepo) Update(_ context.Context, block *model.OfficeHourBlock) error {
	m.blocks[block.OfficeHourBlockID] = block
	return nil
}

func (m *mockOfficeHourRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.blocks, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Name
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, activeOnly bool) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if activeOnly && !r.IsActive {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock InstructorRepository ──

type mockInstructorRepo struct {
	instructors map[string]*model.Instructor
}

func newMockInstructorRepo() *mockInstructorRepo {
	return &mockInstructorRepo{instructors: make(map[string]*model.Instructor)}
}

func (m *mockInstructorRepo) Create(_ context.Context, instructor *model.Instructor) error {
	if instructor.InstructorID == "" {
		instructor.InstructorID = "inst-" + instructor.Name
	}
	m.instructors[instructor.InstructorID] = instructor
	return nil
}

func (m *mockInstructorRepo) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	if i, ok := m.instructors[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstructorRepo) List(_ context.Context, activeOnly bool) ([]model.Instructor, error) {
	var result []model.Instructor
	for _, i := range m.instructors {
		if activeOnly && !i.IsActive {
			continue
		}
		result = append(result, *i)
	}
	return result, nil
}

func (m *mockInstructorRepo) Update(_ context.Context, instructor *model.Instructor) error {
	m.instructors[instructor.InstructorID] = instructor
	return nil
}

func (m *mockInstructorRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.instructors, id)
	return nil
}

// ── Mock InstructorTermLockRepository ──

type mockInstructorTermLockRepo struct {
	locks map[string]*model.InstructorTermLock // key: termID+"/"+instructorID
	seq   int
}

func newMockInstructorTermLockRepo() *mockInstructorTermLockRepo {
	return &mockInstructorTermLockRepo{locks: make(map[string]*model.InstructorTermLock)}
}

func (m *mockInstructorTermLockRepo) GetOrCreate(_ context.Context, termID, instructorID string) (*model.InstructorTermLock, error) {
	key := termID + "/" + instructorID
	if l, ok := m.locks[key]; ok {
		return l, nil
	}
	m.seq++
	l := &model.InstructorTermLock{
		LockID:       fmt.Sprintf("lock-%d", m.seq),
		TermID:       termID,
		InstructorID: instructorID,
	}
	m.locks[key] = l
	return l, nil
}

func (m *mockInstructorTermLockRepo) ListByTerm(_ context.Context, termID string) ([]model.InstructorTermLock, error) {
	var result []model.InstructorTermLock
	for _, l := range m.locks {
		if l.TermID == termID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockInstructorTermLockRepo) Update(_ context.Context, lock *model.InstructorTermLock) error {
	m.locks[lock.TermID+"/"+lock.InstructorID] = lock
	return nil
}

// ── Mock SchedulePublicationRepository ──

type mockPublicationRepo struct {
	pubs map[string]*model.SchedulePublication
	seq  int
}

func newMockPublicationRepo() *mockPublicationRepo {
	return &mockPublicationRepo{pubs: make(map[string]*model.SchedulePublication)}
}

func (m *mockPublicationRepo) Create(_ context.Context, pub *model.SchedulePublication) error {
	if pub.PublicationID == "" {
		m.seq++
		pub.PublicationID = fmt.Sprintf("pub-%d", m.seq)
	}
	m.pubs[pub.PublicationID] = pub
	return nil
}

func (m *mockPublicationRepo) ListByTerm(_ context.Context, termID string) ([]model.SchedulePublication, error) {
	var result []model.SchedulePublication
	for _, p := range m.pubs {
		if p.TermID == termID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPublicationRepo) MaxVersion(_ context.Context, termID string) (int, error) {
	max := 0
	for _, p := range m.pubs {
		if p.TermID == termID && p.Version > max {
			max = p.Version
		}
	}
	return max, nil
}

func (m *mockPublicationRepo) GetLatest(_ context.Context, termID string) (*model.SchedulePublication, error) {
	var latest *model.SchedulePublication
	for _, p := range m.pubs {
		if p.TermID == termID && (latest == nil || p.Version > latest.Version) {
			latest = p
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockPublicationRepo) GetByToken(_ context.Context, token string) (*model.SchedulePublication, error) {
	for _, p := range m.pubs {
		if p.PublicToken == token {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
