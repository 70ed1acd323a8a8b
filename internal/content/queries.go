package content

const mediaFields = `
      id
      title
      type
      file {
        url
      }
      caption
      altText`

const projectSummaryFields = `
      id
      title
      slug
      category
      techStack
      projectUrl
      githubUrl
      createdAt
      demoMedia {` + mediaFields + `
      }
      inspirationMedia {` + mediaFields + `
      }`

const projectDetailFields = projectSummaryFields + `
      developmentProcess {
        document
      }
      designInspiration {
        document
      }`

const queryMediaItems = `
  query {
    mediaItems {` + mediaFields + `
      createdAt
    }
  }`

const queryMediaItem = `
  query mediaItem($id: ID!) {
    mediaItem(where: { id: $id }) {` + mediaFields + `
      createdAt
    }
  }`

// Listing queries leave out the document fields; they are only needed on
// project pages.
const queryProjects = `
  query {
    projects {` + projectSummaryFields + `
    }
  }`

const queryProjectBySlug = `
  query getProjectBySlug($where: ProjectWhereInput!) {
    projects(where: $where) {` + projectDetailFields + `
    }
  }`

const queryProjectByID = `
  query getProjectByID($where: ProjectWhereInput!) {
    projects(where: $where) {` + projectDetailFields + `
    }
  }`

const queryProjectsByCategory = `
  query getProjectsByCategory($category: String!) {
    projects(where: { category: { equals: $category } }) {` + projectSummaryFields + `
    }
  }`

const queryProjectsBasic = `
  query {
    projects {
      id
      title
      slug
      category
      techStack
      createdAt
      demoMedia(take: 1) {
        id
        file {
          url
        }
        altText
      }
    }
  }`
