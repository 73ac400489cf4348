package service

import adminv1 "github.com/mmynk/duoreg/pkg/adminv1"

// AdminService serves the admin RPCs from the review and export services.
type AdminService struct {
	*ReviewService
	*ExportService
}

var _ adminv1.AdminServiceHandler = (*AdminService)(nil)

// NewAdminService combines review and export into one RPC handler.
func NewAdminService(review *ReviewService, exports *ExportService) *AdminService {
	return &AdminService{ReviewService: review, ExportService: exports}
}
