package assessment

// System creates and holds assessments for the tribal infrastructure.
type System struct {
	assessments []*Assessment
}

func NewSystem() *System {
	return &System{}
}

func (s *System) CreateAssessment(assessmentType Type, name string) *Assessment {
	a := New(assessmentType, name)
	s.assessments = append(s.assessments, a)
	return a
}

// RunSecurityAssessment conducts the standard security checks. The
// sovereignty finding stays inside the network by its protection level.
func (s *System) RunSecurityAssessment() *Assessment {
	a := s.CreateAssessment(TypeSecurity, "Tribal Infrastructure Security Assessment")
	a.AddFinding("network_security", SeverityInfo, "Network perimeter security validated", ProtectionPublic)
	a.AddFinding("encryption", SeverityInfo, "Data encryption standards implemented", ProtectionPublic)
	a.AddFinding("sovereignty", SeverityInfo, "Tribal sovereignty controls active", ProtectionTribalSovereign)
	return a
}

// RunInfrastructureAssessment conducts the capacity checks.
func (s *System) RunInfrastructureAssessment() *Assessment {
	a := s.CreateAssessment(TypeInfrastructure, "Tribal Infrastructure Capacity Assessment")
	a.AddFinding("capacity", SeverityInfo, "Infrastructure capacity validated for federal continuity", ProtectionSensitive)
	a.AddFinding("scalability", SeverityInfo, "Systems demonstrate scalability for growth", ProtectionSensitive)
	return a
}

// Assessment returns the assessment with the given ID, or nil.
func (s *System) Assessment(id string) *Assessment {
	for _, a := range s.assessments {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *System) Assessments() []*Assessment {
	return append([]*Assessment{}, s.assessments...)
}
