package formation

import (
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/gin-gonic/gin"
)

// FormationController serves the read-only formation catalog.
type FormationController struct {
	catalog *Catalog
}

func NewFormationController(catalog *Catalog) *FormationController {
	return &FormationController{catalog: catalog}
}

// ListFormations godoc
// @Summary List formation templates
// @Description Lists the formation templates for a team size, default first. Without a size, returns every size.
// @Tags Formations
// @Produce json
// @Param size query int false "Team size (6-11)"
// @Success 200 {object} responses.SuccessResponse{data=[]Template} "Formation templates"
// @Failure 400 {object} responses.ErrorResponse "Invalid size"
// @Router /formations [get]
func (fc *FormationController) ListFormations(c *gin.Context) {
	sizeParam := c.Query("size")
	if sizeParam == "" {
		all := make(map[int][]Template)
		for _, size := range fc.catalog.Sizes() {
			all[size] = fc.catalog.AvailableFormations(size)
		}
		responses.SendSuccess(c, http.StatusOK, "Formations retrieved successfully", all)
		return
	}

	size, err := strconv.Atoi(sizeParam)
	if err != nil || !ValidTeamSize(size) {
		responses.SendError(c, http.StatusBadRequest, "Team size must be an integer between 6 and 11")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formations retrieved successfully", fc.catalog.AvailableFormations(size))
}

// FormationRoutes registers the public catalog routes.
func FormationRoutes(router *gin.RouterGroup, catalog *Catalog) {
	fc := NewFormationController(catalog)
	router.GET("/formations", fc.ListFormations)
}
