package shader

// PhongVertex transforms lit, textured meshes.
const PhongVertex = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform vec2 uRepeat;

out vec3 vNormal;
out vec3 vWorldPos;
out vec2 vTexCoord;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord * uRepeat;
    gl_Position = uProjection * uView * world;
}
`

// PhongFragment shades with up to four directional lights
// (lighting.MaxDirectionalLights).
const PhongFragment = `#version 410 core
#define MAX_LIGHTS 4
in vec3 vNormal;
in vec3 vWorldPos;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uColor;
uniform vec3 uAmbient;
uniform vec3 uEye;
uniform float uShininess;
uniform int uLightCount;
uniform vec3 uLightDirs[MAX_LIGHTS];
uniform vec3 uLightColors[MAX_LIGHTS];

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    if (!gl_FrontFacing) {
        normal = -normal;
    }
    vec3 viewDir = normalize(uEye - vWorldPos);
    vec4 tex = texture(uTexture, vTexCoord);
    vec3 base = uColor * tex.rgb;

    vec3 result = uAmbient * base;
    for (int i = 0; i < uLightCount; i++) {
        vec3 l = normalize(uLightDirs[i]);
        float diff = max(dot(normal, l), 0.0);
        vec3 h = normalize(l + viewDir);
        float specular = diff > 0.0 ? pow(max(dot(normal, h), 0.0), uShininess) : 0.0;
        result += uLightColors[i] * (diff * base + specular * 0.0667);
    }
    FragColor = vec4(result, tex.a);
}
`

// LineVertex transforms coloured line lists.
const LineVertex = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vColor;

void main() {
    vColor = aColor;
    gl_Position = uViewProj * vec4(aPosition, 1.0);
}
`

// LineFragment outputs the vertex colour.
const LineFragment = `#version 410 core
in vec3 vColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(vColor, 1.0);
}
`
