// @title           joe-writer API
// @version         1.0
// @description     Generate long-form content or page copy from competitor text.
// @BasePath        /api/v1
package api
